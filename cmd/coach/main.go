// Command coach drives the chat orchestrator from the terminal: send a
// message (optionally with a meal photo), review the food-log suggestions in
// the reply, apply one, and list the day's entries.
package main

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"flf-coach/internal/client"
	"flf-coach/internal/config"
	"flf-coach/internal/models"
	"flf-coach/internal/storage"
)

const usage = `Usage:
  coach chat [-image FILE] MESSAGE    talk to the coach
  coach apply MESSAGE_ID INDEX        log a suggested item from a reply
  coach entries [DATE]                list food entries (default: today)
  coach goal LBS                      set goal weight
  coach challenge TEXT                remember a challenge
`

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := config.LoadClient()
	store, err := storage.Open(cfg.DataPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DataPath).Msg("open local store")
	}
	defer store.Close()

	svc := client.New(store, cfg, log)
	ctx := context.Background()

	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	switch args[0] {
	case "chat":
		runChat(ctx, svc, args[1:], log)
	case "apply":
		runApply(ctx, svc, store, args[1:], log)
	case "entries":
		runEntries(ctx, store, args[1:], log)
	case "goal":
		runGoal(ctx, store, args[1:], log)
	case "challenge":
		runChallenge(ctx, store, args[1:], log)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func runChat(ctx context.Context, svc *client.Service, args []string, log zerolog.Logger) {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	imagePath := fs.String("image", "", "path to a meal photo to attach")
	fs.Parse(args)

	if fs.NArg() == 0 {
		log.Fatal().Msg("chat needs a message")
	}
	message := fs.Arg(0)

	imageBase64 := ""
	if *imagePath != "" {
		data, err := os.ReadFile(*imagePath)
		if err != nil {
			log.Fatal().Err(err).Msg("read image")
		}
		imageBase64 = base64.StdEncoding.EncodeToString(data)
	}

	reply, err := svc.Send(ctx, message, imageBase64)
	if err != nil {
		log.Fatal().Err(err).Msg("send message")
	}

	fmt.Println(reply.Content)

	if items := svc.Suggestions(reply); items != nil {
		fmt.Printf("\nSuggestions (apply with: coach apply %s INDEX):\n", reply.ID)
		for i, item := range items {
			line := fmt.Sprintf("  [%d] %s — %.0f cal, %.0fg protein", i, item.Name, item.Calories, item.Protein)
			if item.Quantity != "" {
				line += fmt.Sprintf(" (%s)", item.Quantity)
			}
			fmt.Println(line)
		}
	}
}

func runApply(ctx context.Context, svc *client.Service, store *storage.Store, args []string, log zerolog.Logger) {
	if len(args) != 2 {
		log.Fatal().Msg("apply needs MESSAGE_ID and INDEX")
	}
	index, err := strconv.Atoi(args[1])
	if err != nil {
		log.Fatal().Str("index", args[1]).Msg("index must be a number")
	}

	msg, err := store.Message(ctx, args[0])
	if err != nil {
		log.Fatal().Err(err).Msg("load message")
	}

	applied, entry, err := svc.ApplySuggestion(ctx, *msg, index)
	if err != nil {
		log.Fatal().Err(err).Msg("apply suggestion")
	}
	if !applied {
		fmt.Println("Already logged.")
		return
	}
	fmt.Printf("Logged %s — %.0f cal, %.0fg protein.\n", entry.Name, entry.Calories, entry.ProteinGrams)
}

func runEntries(ctx context.Context, store *storage.Store, args []string, log zerolog.Logger) {
	dateKey := time.Now().Format("2006-01-02")
	if len(args) > 0 {
		dateKey = args[0]
	}

	entries, err := store.FoodEntries(ctx, dateKey)
	if err != nil {
		log.Fatal().Err(err).Msg("load entries")
	}
	if len(entries) == 0 {
		fmt.Printf("No entries for %s.\n", dateKey)
		return
	}

	var calories, protein float64
	for _, e := range entries {
		fmt.Printf("  %s — %.0f cal, %.0fg protein\n", e.Name, e.Calories, e.ProteinGrams)
		calories += e.Calories
		protein += e.ProteinGrams
	}
	fmt.Printf("Total: %.0f cal, %.0fg protein\n", calories, protein)
}

func runGoal(ctx context.Context, store *storage.Store, args []string, log zerolog.Logger) {
	if len(args) != 1 {
		log.Fatal().Msg("goal needs a weight in lbs")
	}
	lbs, err := strconv.ParseFloat(args[0], 64)
	if err != nil || lbs < 0 {
		log.Fatal().Str("lbs", args[0]).Msg("goal weight must be a non-negative number")
	}

	if err := store.SetGoalWeight(ctx, lbs); err != nil {
		log.Fatal().Err(err).Msg("save goal")
	}

	goals := models.UserGoals{GoalWeightLbs: lbs}
	fmt.Printf("Goal weight set to %g lbs. Weekly calorie target: %.0f cal.\n", lbs, goals.WeeklyCalorieTarget())
}

func runChallenge(ctx context.Context, store *storage.Store, args []string, log zerolog.Logger) {
	if len(args) != 1 {
		log.Fatal().Msg("challenge needs text")
	}
	if err := store.AddChallenge(ctx, args[0]); err != nil {
		log.Fatal().Err(err).Msg("save challenge")
	}
	fmt.Println("Got it. I'll keep that in mind.")
}
