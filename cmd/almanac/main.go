// Command almanac is a one-shot inspector for a running hearthome daemon:
// it prints household status, the financial runway, and recent events, and
// can fast-forward the simulation.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

func main() {
	apiURL := envOrDefault("HEARTHOME_API_URL", "http://localhost:8780")
	adminKey := os.Getenv("HEARTHOME_ADMIN_KEY")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	client := &http.Client{Timeout: 10 * time.Second}

	var err error
	switch os.Args[1] {
	case "status":
		err = printStatus(client, apiURL)
	case "economy":
		err = printEconomy(client, apiURL)
	case "events":
		err = printEvents(client, apiURL)
	case "skip":
		if len(os.Args) < 3 {
			usage()
			os.Exit(2)
		}
		var days float64
		if days, err = strconv.ParseFloat(os.Args[2], 64); err != nil || days <= 0 {
			fmt.Fprintln(os.Stderr, "skip needs a positive number of days")
			os.Exit(2)
		}
		err = skip(client, apiURL, adminKey, days)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "almanac:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: almanac <command>

commands:
  status        household overview
  economy       balance and days of runway
  events        recent simulation events
  skip <days>   fast-forward (needs HEARTHOME_ADMIN_KEY)

environment:
  HEARTHOME_API_URL    daemon address (default http://localhost:8780)
  HEARTHOME_ADMIN_KEY  bearer token for skip`)
}

func printStatus(client *http.Client, apiURL string) error {
	var body struct {
		GameDay float64 `json:"game_day"`
		Units   int     `json:"units"`
		Goods   int     `json:"goods"`
		Money   float64 `json:"money"`
	}
	if err := getJSON(client, apiURL+"/api/v1/status", &body); err != nil {
		return err
	}

	fmt.Printf("Day %.1f — %d growing, %d in the pantry, %s in the bank\n",
		body.GameDay, body.Units, body.Goods, money(body.Money))
	return nil
}

func printEconomy(client *http.Client, apiURL string) error {
	var body struct {
		Econ struct {
			Money             float64 `json:"money"`
			WeeklyRent        float64 `json:"weekly_rent"`
			WeeklyGroceryBase float64 `json:"weekly_grocery_base"`
		} `json:"econ"`
		WeeklyIncome  float64 `json:"weekly_income"`
		RunwayForever bool    `json:"runway_forever"`
		RunwayDays    float64 `json:"runway_days"`
	}
	if err := getJSON(client, apiURL+"/api/v1/economy", &body); err != nil {
		return err
	}

	fmt.Printf("Balance:   %s\n", money(body.Econ.Money))
	fmt.Printf("Rent:      %s/week\n", money(body.Econ.WeeklyRent))
	fmt.Printf("Groceries: %s/week before savings\n", money(body.Econ.WeeklyGroceryBase))
	fmt.Printf("Income:    %s/week\n", money(body.WeeklyIncome))
	if body.RunwayForever {
		fmt.Println("Runway:    forever (breaking even or better)")
	} else {
		until := time.Now().Add(time.Duration(body.RunwayDays) * 24 * time.Hour)
		fmt.Printf("Runway:    %.0f days (around %s)\n", body.RunwayDays, humanize.Time(until))
	}
	return nil
}

func printEvents(client *http.Client, apiURL string) error {
	var body struct {
		Events []struct {
			Kind string  `json:"kind"`
			Day  float64 `json:"day"`
		} `json:"events"`
	}
	if err := getJSON(client, apiURL+"/api/v1/events?limit=20", &body); err != nil {
		return err
	}

	if len(body.Events) == 0 {
		fmt.Println("Nothing has happened lately.")
		return nil
	}
	for _, ev := range body.Events {
		fmt.Printf("day %6.2f  %s\n", ev.Day, ev.Kind)
	}
	return nil
}

func skip(client *http.Client, apiURL, adminKey string, days float64) error {
	if adminKey == "" {
		return fmt.Errorf("HEARTHOME_ADMIN_KEY is required for skip")
	}

	payload, _ := json.Marshal(map[string]float64{"days": days})
	req, err := http.NewRequest("POST", apiURL+"/api/v1/skip", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+adminKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("skip failed: %s", resp.Status)
	}

	fmt.Printf("Skipped forward %s days.\n", humanize.Commaf(days))
	return nil
}

func getJSON(client *http.Client, url string, out any) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: %s", url, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func money(v float64) string {
	return "$" + humanize.CommafWithDigits(v, 2)
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
