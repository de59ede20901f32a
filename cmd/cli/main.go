package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"betterfinder/internal/config"
	"betterfinder/internal/search"
)

var (
	configPath   string
	mode         string
	excludeGlobs []string
	maxDepth     int
	workers      int
	primaryRoot  string
	query        string
	openResult   bool
	showSize     bool
)

// formatSize formats file size in human-readable form
func formatSize(size int64) string {
	switch {
	case size >= 1024*1024*1024:
		return fmt.Sprintf("%.2f GB", float64(size)/(1024*1024*1024))
	case size >= 1024*1024:
		return fmt.Sprintf("%.2f MB", float64(size)/(1024*1024))
	case size >= 1024:
		return fmt.Sprintf("%.2f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%d B", size)
	}
}

// openFileLocation opens file location in the system file manager
func openFileLocation(path string) error {
	path = filepath.Clean(path)
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmdPath := os.Getenv("COMSPEC")
		if cmdPath == "" {
			cmdPath = `C:\Windows\System32\cmd.exe`
		}
		cmd = exec.Command(cmdPath, "/c", "explorer", "/select,", path)
	case "darwin":
		cmd = exec.Command("open", "-R", path)
	default: // Linux and other Unix-like systems
		cmd = exec.Command("xdg-open", filepath.Dir(path))
	}

	return cmd.Run()
}

// barListener renders indexing progress on a terminal spinner.
type barListener struct {
	bar *progressbar.ProgressBar
}

func (l *barListener) OnStatus(message, folder string) {
	_ = folder
	l.bar.Describe(message)
}

func (l *barListener) OnProgress(folder string, files int) {
	l.bar.Describe(fmt.Sprintf("Indexing %s", folder))
	_ = l.bar.Set(files)
}

func (l *barListener) OnComplete(files int) {
	_ = l.bar.Finish()
	fmt.Printf("\nIndexed %d files\n", files)
}

func buildConfig(args []string) (search.Config, error) {
	fileCfg, err := config.Load(configPath)
	if err != nil {
		return search.Config{}, err
	}
	if mode != "" {
		fileCfg.Mode = mode
	}
	if len(excludeGlobs) > 0 {
		fileCfg.ExcludeGlobs = append(fileCfg.ExcludeGlobs, excludeGlobs...)
	}
	if maxDepth > 0 {
		fileCfg.MaxDepth = maxDepth
	}
	if workers > 0 {
		fileCfg.MaxWorkers = workers
	}
	if primaryRoot != "" {
		fileCfg.PrimaryRoot = primaryRoot
	}
	if len(args) > 0 {
		fileCfg.Roots = args
	}
	return fileCfg.SearchConfig()
}

func printResults(engine *search.Engine, results []search.FileEntry) {
	for _, entry := range results {
		icon := engine.FileIcon(entry.Path)
		sizeStr := ""
		if showSize {
			sizeStr = fmt.Sprintf(" (%s)", formatSize(entry.Size))
		}
		fmt.Printf("%s %s%s\n", icon.Glyph, entry.Path, sizeStr)
	}
	fmt.Printf("Total: %d\n", len(results))
}

func interactiveLoop(engine *search.Engine) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("Enter search terms (Ctrl+D to quit):")
	fmt.Print("> ")
	for scanner.Scan() {
		term := strings.TrimSpace(scanner.Text())
		if term != "" {
			printResults(engine, engine.Search(term))
		}
		fmt.Print("> ")
	}
	fmt.Println()
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "betterfinder [roots...]",
		Short: "Fast local file search",
		Long: `Indexes every reachable volume into an in-memory catalog and answers
substring and extension queries against it.
Roots given as arguments override volume discovery.
Example: betterfinder -q report /home /srv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(args)
			if err != nil {
				return err
			}

			engine := search.NewEngine()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-sigChan
				fmt.Println("\nStopping...")
				engine.StopIndexing()
			}()

			bar := progressbar.Default(-1, "Indexing")
			engine.Subscribe(&barListener{bar: bar})

			if !engine.StartIndexing(cfg) {
				return fmt.Errorf("an indexing run is already active")
			}
			engine.Wait()

			if query != "" {
				results := engine.Search(query)
				printResults(engine, results)
				if openResult && len(results) > 0 {
					if err := openFileLocation(results[0].Path); err != nil {
						fmt.Printf("Error opening file location: %v\n", err)
					}
				}
				return nil
			}

			interactiveLoop(engine)
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	rootCmd.Flags().StringVarP(&mode, "mode", "m", "", "Indexing mode: exhaustive or minimal")
	rootCmd.Flags().StringSliceVarP(&excludeGlobs, "exclude", "e", nil, "Directory glob patterns to exclude (can be repeated)")
	rootCmd.Flags().IntVarP(&maxDepth, "max-depth", "d", 0, "Maximum directory depth")
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Number of traversal workers (default: number of CPU cores)")
	rootCmd.Flags().StringVarP(&primaryRoot, "primary", "p", "", "Primary root walked first at full depth")
	rootCmd.Flags().StringVarP(&query, "query", "q", "", "Query to run after indexing (omit for interactive mode)")
	rootCmd.Flags().BoolVarP(&openResult, "open", "o", false, "Open the first result's location")
	rootCmd.Flags().BoolVarP(&showSize, "size", "s", true, "Show file sizes")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
