package main

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	appendbytes "github.com/zxch3n/append-only-bytes"
)

// Demonstrates the core contract: reader goroutines hold views minted
// earlier while the owner keeps appending, and every view keeps reading
// exactly the bytes it saw at mint time.
func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	appendbytes.SetLogger(logger)

	a := appendbytes.New()
	if err := a.Append([]byte{1, 2, 3}); err != nil {
		logger.Fatalf("append failed: %v", err)
	}

	view, err := a.SliceFrom(1)
	if err != nil {
		logger.Fatalf("slice failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			c := view.Clone()
			defer c.Free()
			for j := 0; j < 1000; j++ {
				if got := c.Bytes(); got[0] != 2 || got[1] != 3 {
					logger.Fatalf("reader %d saw mutated view: %v", id, got)
				}
			}
			logger.Infof("reader %d done, view stayed %v", id, c.Bytes())
		}(i)
	}

	// Append enough to force several block replacements while the
	// readers run.
	for i := 0; i < 5000; i++ {
		if err := a.AppendByte(byte(i)); err != nil {
			logger.Fatalf("append failed: %v", err)
		}
	}
	wg.Wait()

	fmt.Printf("final length %d, capacity %d\n", a.Len(), a.Cap())
	fmt.Printf("held view still reads %v\n", view.Bytes())
	fmt.Printf("stats: %+v (live blocks: %d)\n", appendbytes.ReadStats(), appendbytes.ReadStats().LiveBlocks())

	view.Free()
	a.Close()
}
