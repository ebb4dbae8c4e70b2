// Package main provides the entry point for the pwaudit CLI.
//
// pwaudit estimates password strength: character-set entropy, common
// password and pattern checks, a Weak/Medium/Strong label and projected
// crack times for several attacker profiles. It is a heuristic advisory
// tool meant for controlled environments.
//
// Usage:
//
//	pwaudit audit -p 'correct horse battery staple'
//	pwaudit audit -i passwords.txt -m -o report.md
//	pwaudit history
//
// See --help for all available options.
package main

func main() {
	Execute()
}
