package shell

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// renderBook writes every record in book to w as a table or a JSON array.
func renderBook(w io.Writer, book *types.AddressBook, format string) error {
	records := book.Records()

	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encode contacts: %w", err)
		}
		return nil
	}

	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "Address book is empty.")
		return err
	}

	x := table.NewWriter()
	x.AppendHeader(table.Row{"name", "phones"})
	for _, r := range records {
		x.AppendRow(table.Row{r.Name().String(), joinPhones(r)})
	}
	x.AppendFooter(table.Row{"total", len(records)})
	_, err := io.WriteString(w, x.Render()+"\n")
	return err
}
