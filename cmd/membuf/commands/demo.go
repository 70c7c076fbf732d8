package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/membuf/internal/cli/output"
	"github.com/marmos91/membuf/internal/logger"
	"github.com/marmos91/membuf/pkg/bufalloc"
	"github.com/marmos91/membuf/pkg/buffer"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run buffer ownership demos",
	Long: `Run small scenarios that walk through the buffer ownership contract:
move semantics, deep-copy independence, and allocation from a pooled or
bounded allocator.

Examples:
  membuf demo move
  membuf demo copy
  membuf demo pool`,
}

var demoMoveCmd = &cobra.Command{
	Use:   "move",
	Short: "Demonstrate ownership transfer (move semantics)",
	RunE:  runDemoMove,
}

var demoCopyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Demonstrate deep-copy independence",
	RunE:  runDemoCopy,
}

var demoPoolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Demonstrate pooled and bounded allocation",
	RunE:  runDemoPool,
}

func init() {
	demoCmd.AddCommand(demoMoveCmd)
	demoCmd.AddCommand(demoCopyCmd)
	demoCmd.AddCommand(demoPoolCmd)
}

// bufferRow renders one buffer state line for the demo tables.
func bufferRow(name string, b *buffer.Buffer) []string {
	state := "empty"
	if b.Owning() {
		state = "owning"
	}
	return []string{name, state, fmt.Sprintf("%d", b.Len()), fmt.Sprintf("%q", b.String())}
}

func printBuffers(title string, rows ...[]string) {
	fmt.Printf("\n%s\n", title)
	output.Table(os.Stdout, []string{"buffer", "state", "len", "content"}, rows)
}

func runDemoMove(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	alloc := bufalloc.NewPool(cfg.Alloc.PoolAllocConfig(), nil)

	src, err := buffer.NewFromString(alloc, "hello")
	if err != nil {
		return err
	}
	dst, err := buffer.NewFromString(alloc, "world")
	if err != nil {
		return err
	}
	defer src.Release()
	defer dst.Release()

	printBuffers("Before move:", bufferRow("src", src), bufferRow("dst", dst))

	// dst releases "world" and takes over src's storage; src is left
	// empty but valid.
	dst.MoveFrom(src)
	printBuffers("After dst.MoveFrom(src):", bufferRow("src", src), bufferRow("dst", dst))

	// A moved-from buffer is reassignable.
	if err := src.CopyFrom(dst); err != nil {
		return err
	}
	printBuffers("After src.CopyFrom(dst):", bufferRow("src", src), bufferRow("dst", dst))

	// Move-construct: a new buffer steals dst's storage.
	taken := dst.Move()
	defer taken.Release()
	printBuffers("After taken := dst.Move():", bufferRow("dst", dst), bufferRow("taken", taken))

	logger.Debug("move demo finished",
		logger.KeyAllocator, alloc.Kind(),
		logger.KeyBytesInUse, alloc.Stats().BytesInUse)
	return nil
}

func runDemoCopy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	alloc := bufalloc.NewPool(cfg.Alloc.PoolAllocConfig(), nil)

	original, err := buffer.NewFromString(alloc, "abc")
	if err != nil {
		return err
	}
	defer original.Release()

	clone, err := original.Clone()
	if err != nil {
		return err
	}
	defer clone.Release()

	printBuffers("After clone:", bufferRow("original", original), bufferRow("clone", clone))

	// Mutating the original must not leak through to the clone.
	copy(original.Bytes(), "ABC")
	printBuffers("After mutating original in place:",
		bufferRow("original", original), bufferRow("clone", clone))

	// Self-assignment is a guarded no-op.
	if err := original.CopyFrom(original); err != nil {
		return err
	}
	printBuffers("After original.CopyFrom(original):", bufferRow("original", original))

	return nil
}

func runDemoPool(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pool := bufalloc.NewPool(cfg.Alloc.PoolAllocConfig(), nil)
	arena := bufalloc.NewArena(cfg.Alloc.ArenaCapacity.Int64(), nil)

	// Churn some buffers through the pool.
	for i := 0; i < 8; i++ {
		b, err := buffer.NewFromBytes(pool, make([]byte, 1024*(i+1)))
		if err != nil {
			return err
		}
		b.Release()
	}

	// Fill the arena until allocation fails; the failure is an ordinary
	// error, not a crash.
	var kept []*buffer.Buffer
	for {
		b, err := buffer.NewFromBytes(arena, make([]byte, 16*1024))
		if err != nil {
			logger.Info("arena exhausted",
				logger.KeyAllocator, arena.Kind(),
				"remaining", arena.Remaining(),
				logger.KeyError, err.Error())
			break
		}
		kept = append(kept, b)
	}
	for _, b := range kept {
		b.Release()
	}

	fmt.Println("\nAllocator stats:")
	rows := make([][]string, 0, 2)
	for _, a := range []bufalloc.Allocator{pool, arena} {
		s := a.Stats()
		rows = append(rows, []string{
			a.Kind(),
			fmt.Sprintf("%d", s.Allocs),
			fmt.Sprintf("%d", s.Frees),
			fmt.Sprintf("%d", s.Failures),
			fmt.Sprintf("%d", s.BytesInUse),
		})
	}
	output.Table(os.Stdout, []string{"kind", "allocs", "frees", "failures", "bytes in use"}, rows)

	return nil
}
