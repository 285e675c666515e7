package person

import (
	"context"
	"time"

	"tableflip.dev/abcinema/pkg/app"
	"tableflip.dev/abcinema/pkg/commands/options"
	"tableflip.dev/abcinema/pkg/printers"
)

// Person prints a cast or crew member's page.
type Person struct {
	Service *app.Service
	ID      int
	Now     func() time.Time
	Output  *options.OutputOptions
}

func (p *Person) Do(ctx context.Context) error {
	if _, err := p.Service.Catalog(); err != nil {
		return err
	}
	page, err := p.Service.People.Load(ctx, p.ID)
	if err != nil {
		return err
	}
	if p.Output.JSON {
		return p.Output.Print(page)
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	pp := printers.PrettyPrint{Out: p.Output.Writer()}
	pp.Person(page, p.Service.Lists, now())
	return nil
}
