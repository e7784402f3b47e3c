package levelance_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/levelance"
	"github.com/aretw0/levelance/pkg/adapters/memory"
	"github.com/aretw0/levelance/pkg/domain"
)

func ExampleDecode() {
	out, err := levelance.Decode("LPSAAA.BBBLP")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(out)
	// Output: 3.0
}

func ExampleDecode_error() {
	_, err := levelance.Decode("LPXAAALP")
	fmt.Println(errors.Is(err, domain.ErrBadEnvelope))
	// Output: true
}

// ExampleNew_cache shows an engine that serves repeated inputs from memory.
func ExampleNew_cache() {
	eng := levelance.New(levelance.WithCache(memory.NewCache()))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := eng.Decode(ctx, "LPSJJJBBBLP")
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println(res.Output, res.Cached)
	}
	// Output:
	// 30 false
	// 30 true
}
