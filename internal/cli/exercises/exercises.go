package exercises

import (
	"encoding/json"
	"strings"

	"github.com/julianstephens/fittrack/internal/cli"
	"github.com/julianstephens/fittrack/internal/exercises"
	"github.com/julianstephens/fittrack/internal/models"
)

type ExercisesCmd struct {
	Muscles      []string `arg:"" optional:"" help:"Muscle groups to look up. Defaults to chest."`
	List         bool     `help:"List supported muscle groups."`
	Status       bool     `help:"Show the exercise service configuration."`
	Instructions bool     `short:"i" help:"Include instructions."`
	JSON         bool     `help:"Print results as JSON." name:"json"`
}

func (c *ExercisesCmd) Run(ctx *cli.Context) error {
	if c.List {
		ctx.Println("Supported muscle groups:")
		for _, m := range exercises.SupportedMuscles() {
			ctx.Printf("  %s\n", m)
		}
		return nil
	}

	if c.Status {
		st := ctx.Exercises.Status()
		configured := "no (showing built-in suggestions)"
		if st.Configured {
			configured = "yes"
		}
		ctx.Printf("API key configured: %s\n", configured)
		ctx.Printf("Endpoint:           %s\n", st.BaseURL)
		ctx.Printf("Cached groups:      %d\n", st.CacheSize)
		ctx.Printf("Max results:        %d\n", st.MaxResults)
		return nil
	}

	muscles := c.Muscles
	if len(muscles) == 0 {
		muscles = []string{exercises.DefaultMuscle}
	}

	results := ctx.Exercises.FetchMany(ctx.Ctx(), muscles)

	if c.JSON {
		byMuscle := make(map[string][]models.Exercise, len(results))
		for _, r := range results {
			byMuscle[r.Muscle] = r.Exercises
		}
		data, err := json.MarshalIndent(byMuscle, "", "  ")
		if err != nil {
			return err
		}
		ctx.Println(string(data))
		return nil
	}

	for i, r := range results {
		if i > 0 {
			ctx.Println()
		}
		ctx.Printf("%s:\n", title(r.Muscle))
		if r.Status == exercises.StatusRejected {
			ctx.Printf("  ⚠ lookup cancelled: %v\n", r.Err)
		}
		for _, ex := range r.Exercises {
			ctx.Printf("  • %s (%s, %s, %s)\n", ex.Name, ex.Type, ex.Difficulty, ex.Equipment)
			if c.Instructions && ex.Instructions != "" {
				ctx.Printf("      %s\n", ex.Instructions)
			}
		}
	}
	return nil
}

func title(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return exercises.DefaultMuscle
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
