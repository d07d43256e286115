// Package resolve implements the mapping from a bare or qualified session
// name to a concrete (node, session) pair: zero matches is not-found, one
// match is returned directly, and two or more triggers disambiguation —
// an interactive fuzzy-finder pick when standard input is a terminal, a
// deterministic failure otherwise.
package resolve

import (
	"context"
	"sort"
	"strings"

	"github.com/mattsolo1/nexus/fanout"
	"github.com/mattsolo1/nexus/fleetconfig"
	"github.com/mattsolo1/nexus/nexuserr"
	"github.com/mattsolo1/nexus/session"
	"github.com/mattsolo1/nexus/transport"
)

// Match is one candidate (node, session) pair found while scanning the
// fleet for a bare name.
type Match struct {
	Node    string
	Session string
}

// Qualified renders the match in canonical node/session form.
func (m Match) Qualified() string {
	return m.Node + "/" + m.Session
}

// Picker is the interactive fuzzy-finder collaborator: it reads candidate
// lines and returns the selected one, or an error if the user cancelled.
type Picker interface {
	Pick(ctx context.Context, candidates []string) (string, error)
}

// IsInteractive reports whether standard input is attached to a terminal,
// deciding which disambiguation branch a collision takes.
type IsInteractive func() bool

// Resolve maps name to a (node, session) pair.
//
// A name containing "/" is split on the first occurrence and returned
// without a fan-out; validating that the left side names a real node is
// left to the caller. Otherwise every node in cfg.Nodes is queried for its
// live sessions and the matches are collected.
func Resolve(ctx context.Context, runner transport.Runner, cfg *fleetconfig.Config, picker Picker, interactive IsInteractive, name string) (node, sessionName string, err error) {
	if idx := strings.Index(name, "/"); idx >= 0 {
		return name[:idx], name[idx+1:], nil
	}

	results := fanout.Run(ctx, runner, cfg.Nodes, session.ListArgv(), cfg.MaxConcurrentSSH)

	var matches []Match
	for _, n := range cfg.Nodes {
		result := results[n]
		if !result.Success() {
			continue // unreachable node: soft warning territory, never fatal here.
		}
		records, parseErr := session.Parse(result.Stdout)
		if parseErr != nil {
			return "", "", parseErr
		}
		for _, rec := range records {
			if rec.Name == name {
				matches = append(matches, Match{Node: n, Session: rec.Name})
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", "", nexuserr.SessionNotFound(name)
	case 1:
		return matches[0].Node, matches[0].Session, nil
	default:
		return disambiguate(ctx, cfg, picker, interactive, matches)
	}
}

func disambiguate(ctx context.Context, cfg *fleetconfig.Config, picker Picker, interactive IsInteractive, matches []Match) (string, string, error) {
	if interactive == nil || !interactive() {
		// Fleet-iteration order, not the picker's default-node-first sort —
		// the non-interactive failure message reports matches in the order
		// cfg.Nodes lists them.
		qualified := make([]string, len(matches))
		for i, m := range matches {
			qualified[i] = m.Qualified()
		}
		return "", "", nexuserr.AmbiguousSession(qualified)
	}

	sorted := make([]Match, len(matches))
	copy(sorted, matches)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Node != sorted[j].Node {
			return sorted[i].Node < sorted[j].Node
		}
		return sorted[i].Session < sorted[j].Session
	})
	candidates := orderedCandidates(cfg.DefaultNode, sorted)

	selected, err := picker.Pick(ctx, candidates)
	if err != nil {
		return "", "", nexuserr.SelectionCancelled()
	}

	idx := strings.Index(selected, "/")
	if idx < 0 {
		return "", "", nexuserr.SelectionCancelled()
	}
	return selected[:idx], selected[idx+1:], nil
}

// orderedCandidates places the match on cfg.DefaultNode first, preserving
// the deterministic (node, session) sort for the rest.
func orderedCandidates(defaultNode string, matches []Match) []string {
	candidates := make([]string, 0, len(matches))
	var deferred []string
	for _, m := range matches {
		if m.Node == defaultNode {
			candidates = append(candidates, m.Qualified())
		} else {
			deferred = append(deferred, m.Qualified())
		}
	}
	return append(candidates, deferred...)
}
