// ltest tokenizes every test source and compares the token stream, errors
// and warnings against a golden .json file kept next to it.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/balsapop/balsapop/pkg/config"
	"github.com/balsapop/balsapop/pkg/lexer"
	"github.com/balsapop/balsapop/pkg/token"
	"github.com/cespare/xxhash/v2"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/unicode/norm"
)

// Golden is the recorded scan of one source file.
type Golden struct {
	Hash     string   `json:"hash"`
	Flags    string   `json:"flags,omitempty"`
	Tokens   []string `json:"tokens"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

type FileTestResult struct {
	File     string        `json:"file"`
	Status   string        `json:"status"` // PASS, FAIL, SKIP, ERROR
	Message  string        `json:"message,omitempty"`
	Diff     string        `json:"diff,omitempty"`
	Duration time.Duration `json:"duration"`
}

type TestSuiteResults map[string]*FileTestResult

var (
	generateGolden = flag.String("generate-golden", "", "Generate a golden .json file for a given source file.")
	testFiles      = flag.String("test-files", "tests/*.bal", "Glob pattern(s) for files to test (space-separated).")
	skipFiles      = flag.String("skip-files", "", "Files to skip (space-separated).")
	outputJSON     = flag.String("output", ".test_results.json", "Output file for the JSON test report.")
	lexFlags       = flag.String("flags", "", "Lexer -F/-W flags applied before scanning (space-separated).")
	jobs           = flag.Int("j", 4, "Number of parallel test jobs.")
	verbose        = flag.Bool("v", false, "Enable verbose logging.")
	jsonDir        = flag.String("dir", "", "Directory to store/read golden JSON files (defaults to source file dir).")
)

const (
	cRed    = "\x1b[91m"
	cYellow = "\x1b[93m"
	cGreen  = "\x1b[92m"
	cCyan   = "\x1b[96m"
	cBold   = "\x1b[1m"
	cNone   = "\x1b[0m"
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	cfg := config.NewConfig()
	if err := cfg.ProcessFlags(*lexFlags); err != nil {
		log.Fatalf("%s[ERROR]%s %v\n", cRed, cNone, err)
	}

	if *generateGolden != "" {
		if err := writeGolden(*generateGolden, cfg); err != nil {
			log.Fatalf("%s[ERROR]%s %v\n", cRed, cNone, err)
		}
		log.Printf("%s[SUCCESS]%s Golden file created at %s\n", cGreen, cNone, getJSONPath(*generateGolden))
		return
	}

	files, err := expandGlobPatterns(*testFiles)
	if err != nil {
		log.Fatalf("%s[ERROR]%s Invalid glob pattern(s): %v\n", cRed, cNone, err)
	}
	if len(files) == 0 {
		log.Println("No test files found matching the pattern(s).")
		return
	}

	results := runSuite(files, cfg, *jobs)
	printSummary(os.Stdout, results)
	resultsMap := writeJSONReport(results)
	if hasFailures(resultsMap) {
		os.Exit(1)
	}
}

func getJSONPath(sourceFile string) string {
	jsonFileName := "." + filepath.Base(sourceFile) + ".json"
	if *jsonDir != "" {
		return filepath.Join(*jsonDir, jsonFileName)
	}
	return filepath.Join(filepath.Dir(sourceFile), jsonFileName)
}

// hashFile computes the xxhash of a file's content
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum64()), nil
}

// scanFile tokenizes path and records every token, error and warning as a
// line of text.
func scanFile(path string, cfg *config.Config) (*Golden, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if cfg.IsFeatureEnabled(config.FeatNFC) {
		data = norm.NFC.Bytes(data)
	}

	g := &Golden{Hash: fmt.Sprintf("%x", xxhash.Sum64(data)), Flags: *lexFlags, Tokens: []string{}}
	l := lexer.NewLexer([]rune(string(data)), 0, cfg)
	for {
		tok, err := l.Next()
		if err != nil {
			var e *lexer.Error
			if errors.As(err, &e) {
				g.Errors = append(g.Errors, fmt.Sprintf("%s [%s]", e.Error(), e.Kind.Code()))
			} else {
				g.Errors = append(g.Errors, err.Error())
			}
			continue
		}
		if tok.Type == token.EOF {
			break
		}
		g.Tokens = append(g.Tokens, tok.String())
	}
	for _, d := range l.Warnings() {
		g.Warnings = append(g.Warnings, fmt.Sprintf("%d:%d: %s [-W%s]", d.Token.Line, d.Token.Column, d.Msg, cfg.Warnings[d.Warning].Name))
	}
	return g, nil
}

func writeGolden(sourceFile string, cfg *config.Config) error {
	g, err := scanFile(sourceFile, cfg)
	if err != nil {
		return fmt.Errorf("could not scan %s: %w", sourceFile, err)
	}
	jsonData, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal golden data to JSON: %w", err)
	}
	if *jsonDir != "" {
		if err := os.MkdirAll(*jsonDir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", *jsonDir, err)
		}
	}
	return os.WriteFile(getJSONPath(sourceFile), jsonData, 0644)
}

func runSuite(files []string, cfg *config.Config, jobs int) []*FileTestResult {
	skipList := make(map[string]bool)
	for _, f := range strings.Fields(*skipFiles) {
		skipList[f] = true
	}

	tasks := make(chan string, len(files))
	resultsChan := make(chan *FileTestResult, len(files))
	var wg sync.WaitGroup

	for i := 0; i < max(jobs, 1); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range tasks {
				resultsChan <- testFile(file, cfg)
			}
		}()
	}

	// Feed the tasks channel, skipping files with identical content
	seenHashes := make(map[string]string)
	for _, file := range files {
		if skipList[file] || skipList[filepath.Base(file)] {
			resultsChan <- &FileTestResult{File: file, Status: "SKIP", Message: "Explicitly skipped"}
			continue
		}
		fileHash, err := hashFile(file)
		if err != nil {
			resultsChan <- &FileTestResult{File: file, Status: "ERROR", Message: fmt.Sprintf("Failed to read file for hashing: %v", err)}
			continue
		}
		if originalFile, seen := seenHashes[fileHash]; seen {
			resultsChan <- &FileTestResult{File: file, Status: "SKIP", Message: fmt.Sprintf("Content is identical to %s", originalFile)}
			continue
		}
		seenHashes[fileHash] = file
		tasks <- file
	}
	close(tasks)

	wg.Wait()
	close(resultsChan)

	var allResults []*FileTestResult
	for result := range resultsChan {
		allResults = append(allResults, result)
	}
	sort.Slice(allResults, func(i, j int) bool {
		return allResults[i].File < allResults[j].File
	})
	return allResults
}

func testFile(file string, cfg *config.Config) *FileTestResult {
	goldenFile := getJSONPath(file)
	goldenData, err := os.ReadFile(goldenFile)
	if errors.Is(err, os.ErrNotExist) {
		return &FileTestResult{File: file, Status: "SKIP", Message: "Cannot test without a corresponding .json golden file"}
	}
	if err != nil {
		return &FileTestResult{File: file, Status: "ERROR", Message: fmt.Sprintf("Could not read golden file %s: %v", goldenFile, err)}
	}
	var golden Golden
	if err := json.Unmarshal(goldenData, &golden); err != nil {
		return &FileTestResult{File: file, Status: "ERROR", Message: fmt.Sprintf("Could not parse golden file %s: %v", goldenFile, err)}
	}

	start := time.Now()
	got, err := scanFile(file, cfg)
	duration := time.Since(start)
	if err != nil {
		return &FileTestResult{File: file, Status: "ERROR", Message: err.Error(), Duration: duration}
	}
	return compareResults(file, &golden, got, duration)
}

func compareResults(file string, want, got *Golden, duration time.Duration) *FileTestResult {
	var diffs strings.Builder
	if d := cmp.Diff(want.Tokens, got.Tokens); d != "" {
		fmt.Fprintf(&diffs, "Tokens mismatch (-golden +got):\n%s", d)
	}
	if d := cmp.Diff(want.Errors, got.Errors); d != "" {
		fmt.Fprintf(&diffs, "Errors mismatch (-golden +got):\n%s", d)
	}
	if d := cmp.Diff(want.Warnings, got.Warnings); d != "" {
		fmt.Fprintf(&diffs, "Warnings mismatch (-golden +got):\n%s", d)
	}

	if diffs.Len() > 0 {
		msg := "Token stream mismatch"
		if want.Hash != got.Hash {
			msg += " (source changed since the golden file was generated)"
		}
		return &FileTestResult{File: file, Status: "FAIL", Message: msg, Diff: diffs.String(), Duration: duration}
	}
	return &FileTestResult{
		File:     file,
		Status:   "PASS",
		Message:  fmt.Sprintf("%d tokens, %d errors", len(got.Tokens), len(got.Errors)),
		Duration: duration,
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
}

// formatDiff colors the added and removed lines of a cmp diff.
func formatDiff(diff string) string {
	var sb strings.Builder
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		switch {
		case strings.HasPrefix(trimmed, "-"):
			fmt.Fprintf(&sb, "    %s%s%s\n", cRed, line, cNone)
		case strings.HasPrefix(trimmed, "+"):
			fmt.Fprintf(&sb, "    %s%s%s\n", cGreen, line, cNone)
		default:
			fmt.Fprintf(&sb, "    %s\n", line)
		}
	}
	return sb.String()
}

func printSummary(w io.Writer, results []*FileTestResult) {
	var passed, failed, skipped, errored int
	var total time.Duration

	for _, result := range results {
		fmt.Fprintln(w, "----------------------------------------------------------------------")
		fmt.Fprintf(w, "Testing %s%s%s...\n", cCyan, result.File, cNone)

		switch result.Status {
		case "PASS":
			passed++
			fmt.Fprintf(w, "  [%sPASS%s] %s\n", cGreen, cNone, result.Message)
			if *verbose {
				fmt.Fprintf(w, "  [scan: %s]\n", formatDuration(result.Duration))
			}
		case "FAIL":
			failed++
			fmt.Fprintf(w, "  [%sFAIL%s] %s\n", cRed, cNone, result.Message)
			fmt.Fprint(w, formatDiff(result.Diff))
		case "SKIP":
			skipped++
			fmt.Fprintf(w, "  [%sSKIP%s] %s\n", cYellow, cNone, result.Message)
		case "ERROR":
			errored++
			fmt.Fprintf(w, "  [%sERROR%s] %s\n", cRed, cNone, result.Message)
		}
		total += result.Duration
	}

	fmt.Fprintln(w, "----------------------------------------------------------------------")
	fmt.Fprintf(w, "%sTest Summary:%s %s%d Passed%s, %s%d Failed%s, %s%d Skipped%s, %s%d Errored%s, %d Total\n",
		cBold, cNone, cGreen, passed, cNone, cRed, failed, cNone, cYellow, skipped, cNone, cRed, errored, cNone, len(results))
	if scanned := passed + failed; scanned > 0 {
		fmt.Fprintf(w, "Average scan time: %s\n", formatDuration(total/time.Duration(scanned)))
	}
}

func writeJSONReport(results []*FileTestResult) TestSuiteResults {
	resultsMap := make(TestSuiteResults, len(results))
	for _, r := range results {
		resultsMap[r.File] = r
	}

	jsonData, err := json.MarshalIndent(resultsMap, "", "  ")
	if err != nil {
		log.Printf("%s[ERROR]%s Failed to marshal results to JSON: %v\n", cRed, cNone, err)
		return resultsMap
	}

	outputFile := *outputJSON
	if *jsonDir != "" {
		if err := os.MkdirAll(*jsonDir, 0755); err != nil {
			log.Printf("%s[ERROR]%s Failed to create dir %s: %v\n", cRed, cNone, *jsonDir, err)
		}
		outputFile = filepath.Join(*jsonDir, *outputJSON)
	}

	if err := os.WriteFile(outputFile, jsonData, 0644); err != nil {
		log.Printf("%s[ERROR]%s Failed to write JSON report to %s: %v\n", cRed, cNone, outputFile, err)
	} else {
		fmt.Printf("Full test report saved to %s\n", outputFile)
	}
	return resultsMap
}

func hasFailures(results TestSuiteResults) bool {
	for _, result := range results {
		if result.Status == "FAIL" || result.Status == "ERROR" {
			return true
		}
	}
	return false
}

func expandGlobPatterns(patterns string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]bool)
	for _, pattern := range strings.Fields(patterns) {
		files, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %s: %w", pattern, err)
		}
		for _, file := range files {
			absFile, err := filepath.Abs(file)
			if err != nil {
				continue // Skip files we can't resolve
			}
			if !seen[absFile] {
				if info, err := os.Stat(absFile); err == nil && info.Mode().IsRegular() {
					allFiles = append(allFiles, absFile)
					seen[absFile] = true
				}
			}
		}
	}
	return allFiles, nil
}
