package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/acgithub1138/drillscore/internal/testrecords"
)

// Default configuration constants.
const (
	defaultNumRecords  = 1000
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numRecords = flag.Int("records", defaultNumRecords, "Number of score records to generate and submit")
		eventType  = flag.String("event", "armed_regulation", "Event type for generated records")
		groupID    = flag.String("group", "school-demo", "Group ID the records belong to")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Output file for generated records (default: generated_records_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for test output (default: test_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		testrecords.ShowHelp()
		return
	}

	// Setup logging
	if err := testrecords.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	// Create test configuration
	config := &testrecords.Config{
		BaseURL:    *baseURL,
		NumRecords: *numRecords,
		EventType:  *eventType,
		GroupID:    *groupID,
		Workers:    *workers,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	// Run the test
	if err := testrecords.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		return
	}
}
