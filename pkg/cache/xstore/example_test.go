package xstore_test

import (
	"fmt"
	"time"

	"github.com/omeyang/paycache/pkg/cache/xevent"
	"github.com/omeyang/paycache/pkg/cache/xstore"
)

func Example() {
	// 创建容量 1000、默认 TTL 5 分钟的条目仓库
	store, err := xstore.New[string](xstore.Config{
		Capacity:   1000,
		DefaultTTL: 5 * time.Minute,
	})
	if err != nil {
		panic(err)
	}

	// 写入走廊统计
	store.Set("corridor:usdc-xlm:stats", `{"payments":42}`)

	// 读取（命中会提升 LRU recency）
	if v, ok := store.Get("corridor:usdc-xlm:stats"); ok {
		fmt.Println("Found:", v)
	}

	// 按前缀批量失效
	removed := store.DeleteMatching(xevent.PrefixPredicate("corridor:usdc-xlm:"))
	fmt.Println("Removed:", removed)
	fmt.Println("Length:", store.Len())

	// Output:
	// Found: {"payments":42}
	// Removed: 1
	// Length: 0
}
