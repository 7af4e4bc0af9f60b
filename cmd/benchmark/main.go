package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/joripage/lob-engine/pkg/lob"
)

const (
	numOrders = 1_000_000
	minPrice  = 10000
	maxPrice  = 20000
	minQty    = 1
	maxQty    = 100
)

func randomOrder(id uint64, now int64) *lob.Order {
	side := lob.BUY
	if rand.Intn(2) == 0 {
		side = lob.SELL
	}
	price := int64(minPrice + rand.Intn(maxPrice-minPrice+1))
	qty := int64(rand.Intn(maxQty-minQty+1) + minQty)

	return lob.NewOrder(id, "ABC", side, lob.LIMIT, price, qty, now)
}

func main() {
	books := lob.NewBookManager()

	totalTrades := 0
	totalQty := int64(0)
	books.RegisterTradeCallback(func(tr lob.Trade) {
		totalTrades++
		totalQty += tr.Quantity
	})

	start := time.Now()
	for i := 0; i < numOrders; i++ {
		if _, err := books.Submit(randomOrder(uint64(i+1), int64(i+1))); err != nil {
			panic(err)
		}
	}
	elapsed := time.Since(start)

	fmt.Println("--------")
	fmt.Printf("total orders     : %d\n", numOrders)
	fmt.Printf("total trades     : %d\n", totalTrades)
	fmt.Printf("total traded qty : %d\n", totalQty)
	fmt.Printf("time taken       : %s\n", elapsed)
	fmt.Printf("orders/sec       : %.0f\n", float64(numOrders)/elapsed.Seconds())
}
