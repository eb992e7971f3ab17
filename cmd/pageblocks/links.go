package main

import (
	"fmt"

	"github.com/fwojciec/pageblocks"
)

// Run executes the links command.
func (c *LinksCmd) Run(deps *Dependencies) error {
	parser := deps.newParser(parserOptions{})

	links, err := parser.ParseLinks(deps.Ctx, pageblocks.PageRequest{URL: c.URL, Path: c.Path}, deps.vocabulary(c.Vocab))
	if err != nil {
		reportError(deps.Stderr, err)
		return err
	}

	groups := []struct {
		name  string
		links []string
	}{
		{"Top", links.Top},
		{"Internal", links.Internal},
		{"External", links.External},
		{"Other", links.Other},
	}
	for _, g := range groups {
		if len(g.links) == 0 {
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s (%d):\n", g.name, len(g.links))
		for _, l := range g.links {
			fmt.Fprintf(deps.Stdout, "  %s\n", l)
		}
	}
	return nil
}
