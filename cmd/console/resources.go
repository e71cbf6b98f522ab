package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/louisbranch/assetdeck/internal/api"
	"github.com/louisbranch/assetdeck/internal/assets"
	"github.com/louisbranch/assetdeck/internal/controller"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

// fieldFlags collects repeated -set key=value pairs.
type fieldFlags map[string]string

func (f fieldFlags) String() string {
	pairs := make([]string, 0, len(f))
	for key, value := range f {
		pairs = append(pairs, key+"="+value)
	}
	return strings.Join(pairs, ",")
}

func (f fieldFlags) Set(raw string) error {
	key, value, ok := strings.Cut(raw, "=")
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", raw)
	}
	f[key] = value
	return nil
}

// resourceCLI binds one asset controller to its command line rendering.
type resourceCLI[T any] struct {
	name   string
	ctrl   *controller.Controller[T]
	get    func(ctx context.Context, id string) (T, error)
	id     func(T) string
	render func(w io.Writer, items []T)
}

func runCharacters(ctx context.Context, client *api.Client, args []string) error {
	cli := resourceCLI[assets.Character]{
		name: "characters",
		ctrl: controller.Characters(client),
		get:  client.GetCharacter,
		id:   func(c assets.Character) string { return c.ID },
		render: func(w io.Writer, items []assets.Character) {
			fmt.Fprintln(w, "ID\tNAME\tGENDER\tAGE\tABILITY")
			for _, c := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", c.ID, c.Name, c.Gender, c.Age, c.AbilityName)
			}
		},
	}
	return cli.run(ctx, args)
}

func runPets(ctx context.Context, client *api.Client, args []string) error {
	cli := resourceCLI[assets.Pet]{
		name: "pets",
		ctrl: controller.Pets(client),
		get:  client.GetPet,
		id:   func(p assets.Pet) string { return p.ID },
		render: func(w io.Writer, items []assets.Pet) {
			fmt.Fprintln(w, "ID\tNAME\tABILITY")
			for _, p := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Name, p.AbilityName)
			}
		},
	}
	return cli.run(ctx, args)
}

func runVehicles(ctx context.Context, client *api.Client, args []string) error {
	cli := resourceCLI[assets.Vehicle]{
		name: "vehicles",
		ctrl: controller.Vehicles(client),
		get:  client.GetVehicle,
		id:   func(v assets.Vehicle) string { return v.ID },
		render: func(w io.Writer, items []assets.Vehicle) {
			fmt.Fprintln(w, "ID\tNAME\tHP\tSPEED\tCONTROL\tSEATS")
			for _, v := range items {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\n", v.ID, v.Name, v.Horsepower, v.Speed, v.Control, v.Seats)
			}
		},
	}
	return cli.run(ctx, args)
}

func (c resourceCLI[T]) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: console %s list|show|create|update|delete [flags]", c.name)
	}
	switch args[0] {
	case "list":
		return c.list(ctx, args[1:])
	case "show":
		return c.show(ctx, args[1:])
	case "create":
		return c.create(ctx, args[1:])
	case "update":
		return c.update(ctx, args[1:])
	case "delete":
		return c.delete(ctx, args[1:])
	default:
		return fmt.Errorf("unknown %s subcommand %q", c.name, args[0])
	}
}

func (c resourceCLI[T]) list(ctx context.Context, args []string) error {
	fs := newFlagSet(c.name + " list")
	search := fs.String("search", "", "filter the list by a search term")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := c.ctrl.Load(ctx); err != nil {
		return err
	}
	items := c.ctrl.Search(*search)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	c.render(w, items)
	return w.Flush()
}

func (c resourceCLI[T]) show(ctx context.Context, args []string) error {
	fs := newFlagSet(c.name + " show")
	id := fs.String("id", "", "record id to fetch")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	record, err := c.get(ctx, *id)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	c.render(w, []T{record})
	return w.Flush()
}

func (c resourceCLI[T]) create(ctx context.Context, args []string) error {
	fields := fieldFlags{}
	fs := newFlagSet(c.name + " create")
	fs.Var(fields, "set", "field value as key=value (repeatable)")
	imagePath := fs.String("image", "", "path to an image file to attach")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c.ctrl.OpenCreateForm()
	return c.submit(ctx, fields, *imagePath)
}

func (c resourceCLI[T]) update(ctx context.Context, args []string) error {
	fields := fieldFlags{}
	fs := newFlagSet(c.name + " update")
	id := fs.String("id", "", "record id to update")
	fs.Var(fields, "set", "field value as key=value (repeatable)")
	imagePath := fs.String("image", "", "path to an image file to attach")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	if err := c.ctrl.Load(ctx); err != nil {
		return err
	}
	var record T
	found := false
	for _, item := range c.ctrl.Items() {
		if c.id(item) == *id {
			record = item
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%s record %q not found", strings.TrimSuffix(c.name, "s"), *id)
	}

	c.ctrl.OpenEditForm(record)
	return c.submit(ctx, fields, *imagePath)
}

func (c resourceCLI[T]) submit(ctx context.Context, fields fieldFlags, imagePath string) error {
	for key, value := range fields {
		if err := c.ctrl.SetValue(key, value); err != nil {
			return err
		}
	}

	var file *api.Upload
	if imagePath != "" {
		content, err := os.ReadFile(imagePath)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		file = &api.Upload{Filename: imagePath, Content: content}
	}

	if err := c.ctrl.Submit(ctx, file); err != nil {
		return err
	}
	if notice := c.ctrl.Notice(); notice != "" {
		fmt.Println(notice)
	}
	return nil
}

func (c resourceCLI[T]) delete(ctx context.Context, args []string) error {
	fs := newFlagSet(c.name + " delete")
	id := fs.String("id", "", "record id to delete")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	if err := c.ctrl.Load(ctx); err != nil {
		return err
	}
	confirm := func() bool {
		if *yes {
			return true
		}
		fmt.Fprintf(os.Stderr, "Delete %s %s? [y/N]: ", strings.TrimSuffix(c.name, "s"), *id)
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
	if err := c.ctrl.ConfirmDelete(ctx, *id, confirm); err != nil {
		return err
	}
	fmt.Printf("Deleted %s %s\n", strings.TrimSuffix(c.name, "s"), *id)
	return nil
}
