package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/marcelsud/issue-webhooks/policy"
)

/* validate-policy - Standalone CLI tool to validate a delivery policy file
 * Usage: go run cmd/validate-policy/main.go [policy.yaml]
 * Exit codes: 0 = valid, 1 = invalid
 */

func main() {
	policyFile := "policy.yaml"
	if len(os.Args) > 1 {
		policyFile = os.Args[1]
	}

	fmt.Printf("Validating policy file: %s\n", policyFile)
	fmt.Println(strings.Repeat("-", 50))

	p, err := policy.Load(policyFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ VALIDATION FAILED\n\n")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ VALIDATION PASSED\n\n")
	fmt.Printf("   Max Attempts:    %d\n", p.MaxAttempts)
	fmt.Printf("   Backoff Base:    %s\n", p.BackoffBase)
	for attempt := 1; attempt < p.MaxAttempts; attempt++ {
		fmt.Printf("   Wait after #%d:   %s\n", attempt, p.Backoff(attempt))
	}
	fmt.Printf("   Request Timeout: %s\n", p.RequestTimeout)
	if len(p.EventTypes) == 0 {
		fmt.Printf("   Event Types:     (all)\n")
	} else {
		fmt.Printf("   Event Types:     %s\n", strings.Join(p.EventTypes, ", "))
	}
}
