// truai — governance gate for AI assistant actions.
// Classifies risk, gates on approval, routes approved work to an
// inference tier, watermarks output, and audits every decision.
package main

import "github.com/truai/governor/internal/cli"

func main() {
	cli.Execute()
}
