// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/skillshub/skillshub-core/fetch"
	"github.com/skillshub/skillshub-core/loader"
	"github.com/skillshub/skillshub-core/registry"
	"github.com/skillshub/skillshub-core/vcs"
)

type loadFlags struct {
	owner        string
	repo         string
	ref          string
	local        string
	dest         string
	method       string
	clean        bool
	runtime      string
	expectCommit string
	expectTag    string
	expectHash   string
	strict       bool
	rules        []string
	xdg          bool
}

// resolveDest picks the checkout destination: an explicit --dest wins, then
// the XDG data directory when --xdg is set, then the working-directory
// default.
func resolveDest(dest string, useXDG bool) string {
	if dest != "" {
		return dest
	}
	if useXDG {
		return fetch.XDGDestDir()
	}
	return ""
}

func newLoadCmd() *cobra.Command {
	flags := &loadFlags{}

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Fetch a source, verify it, and register its skills",
		Long: `Load runs the full pipeline for one source: fetch the working tree,
compute its content hash, verify pinned references when expectations are
given, discover every manifest-bearing directory, and register each skill.
The result is printed as JSON.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := vcs.NewGitClient(nil)
			l := loader.New(fetch.NewFetcher(client, nil), client, registry.New())

			result, err := l.Load(cmd.Context(), fetch.Descriptor{
				Owner:     flags.owner,
				Repo:      flags.repo,
				Ref:       flags.ref,
				LocalPath: flags.local,
			}, loader.Options{
				DestDir:          resolveDest(flags.dest, flags.xdg),
				Method:           fetch.Method(flags.method),
				Clean:            flags.clean,
				Runtime:          flags.runtime,
				Expect:           vcs.Expectation{Commit: flags.expectCommit, Tag: flags.expectTag},
				ExpectedTreeHash: flags.expectHash,
				Strict:           flags.strict,
				Rules:            flags.rules,
			})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringVar(&flags.owner, "owner", "", "repository owner")
	cmd.Flags().StringVar(&flags.repo, "repo", "", "repository name")
	cmd.Flags().StringVar(&flags.ref, "ref", "", "branch, tag, or full commit to fetch")
	cmd.Flags().StringVar(&flags.local, "local", "", "register a pre-existing local directory instead of fetching")
	cmd.Flags().StringVar(&flags.dest, "dest", "", "destination directory for checkouts (default "+fetch.DefaultDestDir+")")
	cmd.Flags().BoolVar(&flags.xdg, "xdg", false, "place checkouts under the XDG data directory instead of the working directory")
	cmd.Flags().StringVar(&flags.method, "method", string(fetch.MethodGit), "acquisition method: git or archive")
	cmd.Flags().BoolVar(&flags.clean, "clean", false, "remove an existing checkout before fetching")
	cmd.Flags().StringVar(&flags.runtime, "runtime", registry.DefaultRuntime, "runtime whose entry path is registered")
	cmd.Flags().StringVar(&flags.expectCommit, "expect-commit", "", "verify the checked-out HEAD equals this commit")
	cmd.Flags().StringVar(&flags.expectTag, "expect-tag", "", "verify HEAD carries exactly this tag")
	cmd.Flags().StringVar(&flags.expectHash, "expect-hash", "", "verify the tree hash equals this sha256:<hex> digest")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat integrity mismatches as errors")
	cmd.Flags().StringArrayVar(&flags.rules, "rule", nil, "admission rule every skill must satisfy (repeatable)")

	return cmd
}
