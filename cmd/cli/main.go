package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"clipsource/internal/app"
	"clipsource/internal/config"
	"clipsource/pkg/clipsource"
	"clipsource/pkg/logger"
	"clipsource/pkg/models"
	"clipsource/pkg/utils"
)

const locateTimeout = 10 * time.Minute

func main() {
	log := logger.GetLogger()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	log.Debugf("Executing command: %s", command)

	switch command {
	case "locate":
		handleLocate()
	case "video":
		handleVideo()
	case "runs":
		handleRuns()
	case "cache":
		handleCache()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func createService(configPath string) (clipsource.Service, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return app.BuildService(cfg)
}

func handleLocate() {
	cmd := flag.NewFlagSet("locate", flag.ExitOnError)
	configPath := cmd.String("config", "", "Path to config file")
	asJSON := cmd.Bool("json", false, "Emit the result set as JSON on stdout")
	outPath := cmd.String("out", "", "Also write the result set as JSON to this file")
	cmd.Parse(os.Args[2:])

	if cmd.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: clipsource locate [flags] \"<snippet>\"")
		os.Exit(1)
	}
	snippet := cmd.Arg(0)

	svc, err := createService(*configPath)
	if err != nil {
		fatal("Failed to initialize: %v", err)
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), locateTimeout)
	defer cancel()

	rs, err := svc.Locate(ctx, snippet)
	if err != nil {
		fatal("Locate failed: %v", err)
	}
	writeOut(*outPath, rs)
	emitResultSet(rs, *asJSON)
	if !rs.OK {
		os.Exit(2)
	}
}

func handleVideo() {
	cmd := flag.NewFlagSet("video", flag.ExitOnError)
	configPath := cmd.String("config", "", "Path to config file")
	asJSON := cmd.Bool("json", false, "Emit the result set as JSON on stdout")
	outPath := cmd.String("out", "", "Also write the result set as JSON to this file")
	cmd.Parse(os.Args[2:])

	if cmd.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: clipsource video [flags] <url-or-id> \"<snippet>\"")
		os.Exit(1)
	}

	svc, err := createService(*configPath)
	if err != nil {
		fatal("Failed to initialize: %v", err)
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), locateTimeout)
	defer cancel()

	rs, err := svc.LocateInVideo(ctx, cmd.Arg(0), cmd.Arg(1))
	if err != nil {
		fatal("Locate failed: %v", err)
	}
	writeOut(*outPath, rs)
	emitResultSet(rs, *asJSON)
	if !rs.OK {
		os.Exit(2)
	}
}

func handleRuns() {
	cmd := flag.NewFlagSet("runs", flag.ExitOnError)
	configPath := cmd.String("config", "", "Path to config file")
	asJSON := cmd.Bool("json", false, "Emit runs as JSON on stdout")
	limit := cmd.Int("limit", 20, "Maximum runs to show, 0 for all")
	cmd.Parse(os.Args[2:])

	svc, err := createService(*configPath)
	if err != nil {
		fatal("Failed to initialize: %v", err)
	}
	defer svc.Close()

	runs, err := svc.ListRuns(*limit)
	if err != nil {
		fatal("Listing runs failed: %v", err)
	}

	if *asJSON {
		emitJSON(runs)
		return
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"When", "OK", "Snippet"})
	for _, r := range runs {
		t.AppendRow(table.Row{r.CreatedAt, r.OK, truncate(r.Snippet, 60)})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

func handleCache() {
	cmd := flag.NewFlagSet("cache", flag.ExitOnError)
	configPath := cmd.String("config", "", "Path to config file")
	asJSON := cmd.Bool("json", false, "Emit cached tracks as JSON on stdout")
	evict := cmd.String("evict", "", "Video ID to evict from the caption cache")
	cmd.Parse(os.Args[2:])

	svc, err := createService(*configPath)
	if err != nil {
		fatal("Failed to initialize: %v", err)
	}
	defer svc.Close()

	if *evict != "" {
		if err := svc.EvictCachedTrack(*evict); err != nil {
			fatal("Evicting %s failed: %v", *evict, err)
		}
		fmt.Printf("Evicted caption track for %s\n", *evict)
		return
	}

	tracks, err := svc.ListCachedTracks()
	if err != nil {
		fatal("Listing cache failed: %v", err)
	}

	if *asJSON {
		emitJSON(tracks)
		return
	}
	if len(tracks) == 0 {
		fmt.Println("Caption cache is empty.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Video", "Lang", "Bytes", "Fetched"})
	for _, tr := range tracks {
		t.AppendRow(table.Row{tr.VideoID, tr.Lang, tr.Bytes, tr.FetchedAt})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// emitResultSet prints a result set either as machine JSON or as a table
// for humans. JSON goes to stdout only; all logging is on stderr.
func emitResultSet(rs *models.ResultSet, asJSON bool) {
	if asJSON {
		emitJSON(rs)
		return
	}

	if !rs.OK {
		fmt.Printf("No match: %s\n", rs.Error)
		if rs.Explanation != "" {
			fmt.Println(rs.Explanation)
		}
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"", "Video", "Start", "End", "Conf", "Evidence", "Coverage"})
	t.AppendRow(resultRow("best", *rs.Best))
	for i, alt := range rs.Alternatives {
		t.AppendRow(resultRow(fmt.Sprintf("alt %d", i+1), alt))
	}
	t.SetStyle(table.StyleLight)
	t.Render()

	fmt.Println(rs.Explanation)
	fmt.Printf("Watch: %s&t=%s\n", rs.Best.Reference.URL, rs.Best.TimestampStart)
}

func resultRow(label string, r models.MatchResult) table.Row {
	return table.Row{
		label,
		r.Reference.ID,
		r.TimestampStart,
		r.TimestampEnd,
		r.Confidence,
		r.Details.Evidence,
		fmt.Sprintf("%.2f", r.Details.Coverage),
	}
}

func writeOut(path string, rs *models.ResultSet) {
	if path == "" {
		return
	}
	if err := utils.WriteJSON(path, rs); err != nil {
		fatal("Writing %s: %v", path, err)
	}
}

func emitJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatal("Encoding JSON: %v", err)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func fatal(format string, args ...any) {
	logger.GetLogger().Errorf(format, args...)
	os.Exit(1)
}

func printUsage() {
	fmt.Println("clipsource - locate a quote inside spoken video")
	fmt.Println("\nUsage:")
	fmt.Println("  clipsource locate [--config <path>] [--json] \"<snippet>\"")
	fmt.Println("  clipsource video  [--config <path>] [--json] <url-or-id> \"<snippet>\"")
	fmt.Println("  clipsource runs   [--config <path>] [--json] [--limit <n>]")
	fmt.Println("  clipsource cache  [--config <path>] [--json] [--evict <video_id>]")
	fmt.Println("\nExamples:")
	fmt.Println("  clipsource locate \"people don't buy what you do they buy why you do it\"")
	fmt.Println("  clipsource video --json https://youtu.be/u4ZoJKF_VuA \"start with why\"")
	fmt.Println("\nSearch needs SERPER_API_KEY and/or TAVILY_API_KEY (env or config file).")
}
