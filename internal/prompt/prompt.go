// Package prompt implements the interactive line prompt over the catalog.
package prompt // import "github.com/jebrand/jebman/internal/prompt"

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jebrand/jebman/internal/catalog"
	"github.com/jebrand/jebman/internal/model"
)

const usage = `Commands:
  list                list all books
  add <path>          import a book file
  remove <id>         remove a book and its file
  info <id>           show book details
  tag <id> <name>     attach a tag to a book
  help                show this help
  quit, exit          leave the prompt
`

type Prompt struct {
	ctrl *catalog.Controller
	in   io.Reader
	out  io.Writer
}

func New(ctrl *catalog.Controller, in io.Reader, out io.Writer) *Prompt {
	return &Prompt{ctrl: ctrl, in: in, out: out}
}

// Run reads commands until quit/exit or end of input. Command failures are
// printed and the loop continues.
func (p *Prompt) Run() error {
	scanner := bufio.NewScanner(p.in)
	for {
		fmt.Fprint(p.out, "jebman> ")
		if !scanner.Scan() {
			fmt.Fprintln(p.out)
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprint(p.out, usage)
		default:
			if err := p.dispatch(fields); err != nil {
				fmt.Fprintf(p.out, "error: %v\n", err)
			}
		}
	}
}

func (p *Prompt) dispatch(fields []string) error {
	switch fields[0] {
	case "list":
		return p.list()
	case "add":
		if len(fields) < 2 {
			return fmt.Errorf("usage: add <path>")
		}
		return p.add(strings.Join(fields[1:], " "))
	case "remove":
		if len(fields) != 2 {
			return fmt.Errorf("usage: remove <id>")
		}
		return p.remove(fields[1])
	case "info":
		if len(fields) != 2 {
			return fmt.Errorf("usage: info <id>")
		}
		return p.info(fields[1])
	case "tag":
		if len(fields) < 3 {
			return fmt.Errorf("usage: tag <id> <name>")
		}
		return p.tag(fields[1], strings.Join(fields[2:], " "))
	default:
		return fmt.Errorf("unknown command %q (try help)", fields[0])
	}
}

func (p *Prompt) list() error {
	books, err := p.ctrl.GetBooks()
	if err != nil {
		return err
	}

	fmt.Fprintf(p.out, "%-5s %-40s %-15s %s\n", "ID", "TITLE", "ISBN", "PATH")
	for _, b := range books {
		fmt.Fprintf(p.out, "%-5d %-40s %-15s %s\n", b.ID, truncate(b.Title, 40), b.ISBN, b.Path)
	}
	return nil
}

func (p *Prompt) add(path string) error {
	book, err := p.ctrl.InsertBook(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "added %q (id %d)\n", book.Title, book.ID)
	return nil
}

func (p *Prompt) remove(rawID string) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", rawID)
	}
	if err := p.ctrl.RemoveBook(id); err != nil {
		return err
	}
	fmt.Fprintf(p.out, "removed book %d\n", id)
	return nil
}

func (p *Prompt) info(rawID string) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", rawID)
	}
	book, err := p.ctrl.GetBook(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(p.out, "Title:     %s\n", book.Title)
	if book.ISBN != "" {
		fmt.Fprintf(p.out, "ISBN:      %s\n", book.ISBN)
	}
	if book.UUID != "" {
		fmt.Fprintf(p.out, "UUID:      %s\n", book.UUID)
	}
	if authors, err := p.ctrl.GetBookAuthors(id); err == nil && len(authors) > 0 {
		fmt.Fprintf(p.out, "Authors:   %s\n", joinNames(authorNames(authors)))
	}
	if book.Publisher != nil {
		fmt.Fprintf(p.out, "Publisher: %s\n", book.Publisher.Name)
	}
	if book.Series != nil {
		fmt.Fprintf(p.out, "Series:    %s (#%g)\n", book.Series.Name, book.SeriesNumber)
	}
	if !book.PublishDate.IsZero() {
		fmt.Fprintf(p.out, "Published: %s\n", book.PublishDate.Format("2006-01-02"))
	}
	if tags, err := p.ctrl.GetBookTags(id); err == nil && len(tags) > 0 {
		fmt.Fprintf(p.out, "Tags:      %s\n", joinNames(tagNames(tags)))
	}
	fmt.Fprintf(p.out, "Path:      %s\n", book.Path)
	return nil
}

func (p *Prompt) tag(rawID, name string) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", rawID)
	}
	if err := p.ctrl.TagBook(id, name); err != nil {
		return err
	}
	fmt.Fprintf(p.out, "tagged book %d with %q\n", id, name)
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func authorNames(authors []*model.Author) []string {
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = a.Name
	}
	return names
}

func tagNames(tags []*model.Tag) []string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
