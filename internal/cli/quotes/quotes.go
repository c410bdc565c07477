package quotes

import (
	"encoding/json"
	"strings"

	"github.com/julianstephens/fittrack/internal/cli"
	"github.com/julianstephens/fittrack/internal/models"
	"github.com/julianstephens/fittrack/internal/quotes"
)

type QuoteCmd struct {
	Refresh bool   `short:"r" help:"Ignore the cached quote."`
	Tag     string `help:"Fetch a quote with this tag."`
	Author  string `help:"Fetch a quote by this author."`
	Daily   bool   `help:"Show the quote of the day."`
	Fact    bool   `help:"Show a motivational fact instead."`
	Tags    bool   `help:"List known tags."`
	Status  bool   `help:"Check whether the quote service is reachable."`
	JSON    bool   `help:"Print the quote as JSON." name:"json"`
}

func (c *QuoteCmd) Run(ctx *cli.Context) error {
	switch {
	case c.Fact:
		ctx.Printf("💡 %s\n", ctx.Quotes.MotivationalFact())
		return nil
	case c.Tags:
		ctx.Printf("Tags: %s\n", strings.Join(quotes.AvailableTags(), ", "))
		return nil
	case c.Status:
		return c.printStatus(ctx)
	}

	var q models.Quote
	switch {
	case c.Daily:
		q = ctx.Quotes.QuoteOfTheDay(ctx.Ctx())
	case c.Tag != "":
		q = ctx.Quotes.FetchByTag(ctx.Ctx(), c.Tag)
	case c.Author != "":
		q = ctx.Quotes.FetchByAuthor(ctx.Ctx(), c.Author)
	default:
		q = ctx.Quotes.Fetch(ctx.Ctx(), c.Refresh)
	}

	if c.JSON {
		data, err := json.MarshalIndent(q, "", "  ")
		if err != nil {
			return err
		}
		ctx.Println(string(data))
		return nil
	}

	printQuote(ctx, q)
	return nil
}

func printQuote(ctx *cli.Context, q models.Quote) {
	ctx.Printf("\"%s\"\n", q.Text)
	ctx.Printf("  - %s\n", q.Author)
	if len(q.Tags) > 0 {
		ctx.Printf("  #%s\n", strings.Join(q.Tags, " #"))
	}
	if q.IsFallback {
		ctx.Println("  (offline quote)")
	}
}

func (c *QuoteCmd) printStatus(ctx *cli.Context) error {
	st := ctx.Quotes.Status(ctx.Ctx())
	info := ctx.Quotes.Info()

	ctx.Printf("Endpoint:     %s\n", info.BaseURL)
	if st.Online {
		ctx.Printf("✓ Online (HTTP %d)\n", st.StatusCode)
	} else if st.Error != "" {
		ctx.Printf("❌ Offline: %s\n", st.Error)
	} else {
		ctx.Printf("❌ Offline (HTTP %d)\n", st.StatusCode)
	}
	ctx.Printf("Cache:        %s (%s)\n", info.CacheStatus, info.CacheDuration)
	ctx.Printf("Max retries:  %d\n", info.MaxRetries)
	ctx.Printf("Tags:         %s\n", strings.Join(info.Tags, ", "))
	return nil
}
