package main

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go-recordshop/internal/client"
	"go-recordshop/internal/form"
	"go-recordshop/internal/model"
	"go-recordshop/internal/view"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func (a *app) formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the record formats the shop offers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := a.client(nil).Formats()
			if err != nil {
				return a.readFailure(err)
			}
			for _, f := range formats {
				cmd.Println(f)
			}
			return nil
		},
	}
}

func (a *app) genresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List the genres the shop offers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			genres, err := a.client(nil).Genres()
			if err != nil {
				return a.readFailure(err)
			}
			for _, g := range genres {
				cmd.Println(g)
			}
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	var search, sortBy string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show records as a table",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.guard.Check(client.RouteList)
			if err != nil {
				return err
			}
			records, err := a.loadView(sess, search, sortBy)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				cmd.Println("No records found.")
				return nil
			}
			cmd.Println(renderTable(records))
			return nil
		},
	}

	addViewFlags(cmd.Flags(), &search, &sortBy)
	return cmd
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show every field of one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.guard.Check(client.RouteShow)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			rec, err := a.client(sess).Record(id)
			if err != nil {
				return a.readFailure(err)
			}
			renderRecord(cmd.OutOrStdout(), *rec)
			return nil
		},
	}
}

func (a *app) addCmd() *cobra.Command {
	var in form.RecordForm

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.guard.Check(client.RouteAdd)
			if err != nil {
				return err
			}
			c := a.client(sess)
			payload, err := a.checkForm(c, &in)
			if err != nil {
				return err
			}
			rec, err := c.CreateRecord(payload)
			if err != nil {
				a.log.Warn("create record failed", zap.Error(err))
				return a.writeFailure(err)
			}
			a.log.Info("record created", zap.Int("id", rec.ID))
			cmd.Printf("Created record #%d\n", rec.ID)
			return nil
		},
	}

	bindFormFlags(cmd.Flags(), &in)
	return cmd
}

func (a *app) editCmd() *cobra.Command {
	var in form.RecordForm

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a record; fields not given keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.guard.Check(client.RouteEdit)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c := a.client(sess)
			current, err := c.Record(id)
			if err != nil {
				return a.readFailure(err)
			}

			f := form.FromRecord(*current)
			mergeChanged(cmd.Flags(), &f, &in)

			payload, err := a.checkForm(c, &f)
			if err != nil {
				return err
			}
			rec, err := c.UpdateRecord(id, payload)
			if err != nil {
				a.log.Warn("update record failed", zap.Int("id", id), zap.Error(err))
				return a.writeFailure(err)
			}
			a.log.Info("record updated", zap.Int("id", rec.ID))
			cmd.Printf("Updated record #%d\n", rec.ID)
			return nil
		},
	}

	bindFormFlags(cmd.Flags(), &in)
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.guard.Check(client.RouteDelete)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if !yes {
				answer, err := prompt(cmd, bufio.NewReader(cmd.InOrStdin()), fmt.Sprintf("Delete record #%d? [y/N] ", id))
				if err != nil {
					return err
				}
				if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
					cmd.Println("Cancelled")
					return nil
				}
			}

			res, err := a.client(sess).DeleteRecord(id)
			if err != nil {
				a.log.Warn("delete record failed", zap.Int("id", id), zap.Error(err))
				return a.writeFailure(err)
			}
			a.log.Info("record deleted", zap.Int("id", res.Record.ID))
			cmd.Printf("%s (#%d)\n", res.Message, res.Record.ID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// loadView fetches all records and applies the search and sort.
func (a *app) loadView(sess *client.Session, search, sortBy string) ([]model.Record, error) {
	key, err := view.ParseSortKey(sortBy)
	if err != nil {
		return nil, err
	}
	records, err := a.client(sess).Records()
	if err != nil {
		a.log.Warn("load records failed", zap.Error(err))
		return nil, a.readFailure(err)
	}
	return view.Apply(records, search, key), nil
}

// checkForm validates the form locally, including format and genre against the API's lists.
func (a *app) checkForm(c *client.Client, f *form.RecordForm) (client.RecordPayload, error) {
	errs := f.Validate()

	formats, err := c.Formats()
	if err != nil {
		return client.RecordPayload{}, a.readFailure(err)
	}
	genres, err := c.Genres()
	if err != nil {
		return client.RecordPayload{}, a.readFailure(err)
	}
	if f.Format != "" {
		var fe form.FieldError
		if errors.As(form.CheckChoice("format", f.Format, formats), &fe) {
			errs = append(errs, fe)
		}
	}
	if f.Genre != "" {
		var fe form.FieldError
		if errors.As(form.CheckChoice("genre", f.Genre, genres), &fe) {
			errs = append(errs, fe)
		}
	}
	if len(errs) > 0 {
		return client.RecordPayload{}, fmt.Errorf("please fix the highlighted fields:\n  %s",
			strings.ReplaceAll(errs.Error(), "; ", "\n  "))
	}
	return f.Payload()
}

func addViewFlags(fs *pflag.FlagSet, search, sortBy *string) {
	fs.StringVarP(search, "search", "s", "", "filter by id, customer id, last name, format or genre")
	fs.StringVar(sortBy, "sort", string(view.SortIDAsc), "sort order: "+sortKeyList())
}

func sortKeyList() string {
	keys := make([]string, len(view.SortKeys))
	for i, k := range view.SortKeys {
		keys[i] = string(k)
	}
	return strings.Join(keys, ", ")
}

// formFlag maps a command line flag to a form field.
type formFlag struct {
	name  string
	usage string
	field func(*form.RecordForm) *string
}

var formFlags = []formFlag{
	{"title", "album title", func(f *form.RecordForm) *string { return &f.Title }},
	{"artist", "artist", func(f *form.RecordForm) *string { return &f.Artist }},
	{"format", "format, see `recordctl formats`", func(f *form.RecordForm) *string { return &f.Format }},
	{"genre", "genre, see `recordctl genres`", func(f *form.RecordForm) *string { return &f.Genre }},
	{"year", "release year", func(f *form.RecordForm) *string { return &f.ReleaseYear }},
	{"price", "price", func(f *form.RecordForm) *string { return &f.Price }},
	{"stock", "quantity in stock", func(f *form.RecordForm) *string { return &f.StockQty }},
	{"customer-id", "customer id, digits then one letter (123A)", func(f *form.RecordForm) *string { return &f.CustomerID }},
	{"first-name", "customer first name", func(f *form.RecordForm) *string { return &f.CustomerFirstName }},
	{"last-name", "customer last name", func(f *form.RecordForm) *string { return &f.CustomerLastName }},
	{"contact", "customer phone, 8 or more digits", func(f *form.RecordForm) *string { return &f.CustomerContact }},
	{"email", "customer email", func(f *form.RecordForm) *string { return &f.CustomerEmail }},
}

func bindFormFlags(fs *pflag.FlagSet, f *form.RecordForm) {
	for _, ff := range formFlags {
		fs.StringVar(ff.field(f), ff.name, "", ff.usage)
	}
}

// mergeChanged copies into dst the fields whose flags were set on the command line.
func mergeChanged(fs *pflag.FlagSet, dst, src *form.RecordForm) {
	for _, ff := range formFlags {
		if fs.Changed(ff.name) {
			*ff.field(dst) = *ff.field(src)
		}
	}
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid record id %q", s)
	}
	return id, nil
}
