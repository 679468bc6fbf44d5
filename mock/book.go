package mock

import (
	"context"
	"io"

	"github.com/fwojciec/wenji"
)

var _ wenji.BookWriter = (*BookWriter)(nil)

// BookWriter is a mock implementation of wenji.BookWriter.
type BookWriter struct {
	WriteBookFn func(ctx context.Context, w io.Writer, book *wenji.Book) error
}

func (b *BookWriter) WriteBook(ctx context.Context, w io.Writer, book *wenji.Book) error {
	return b.WriteBookFn(ctx, w, book)
}
