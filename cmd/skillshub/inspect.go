// SPDX-FileCopyrightText: Copyright 2026 Skillshub Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillshub/skillshub-core/manifest"
	"github.com/skillshub/skillshub-core/treehash"
	"github.com/skillshub/skillshub-core/vcs"
)

func newHashCmd() *cobra.Command {
	var verify string

	cmd := &cobra.Command{
		Use:   "hash <dir>",
		Short: "Compute the deterministic content hash of a directory tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			hash, err := treehash.Compute(args[0], treehash.DefaultExcludes)
			if err != nil {
				return err
			}
			if verify == "" {
				fmt.Println(hash.String())
				return nil
			}
			return printJSON(treehash.Result{
				OK:       hash.String() == verify,
				Expected: verify,
				Actual:   hash.String(),
			})
		},
	}

	cmd.Flags().StringVar(&verify, "verify", "", "compare against this sha256:<hex> digest and print the result")
	return cmd
}

func newVerifyRefCmd() *cobra.Command {
	var commit, tag string

	cmd := &cobra.Command{
		Use:   "verify-ref <dir>",
		Short: "Verify a checkout sits at a pinned commit or tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := vcs.VerifyPinnedRef(cmd.Context(), vcs.NewGitClient(nil), args[0],
				vcs.Expectation{Commit: commit, Tag: tag})
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringVar(&commit, "commit", "", "expected full commit identifier")
	cmd.Flags().StringVar(&tag, "tag", "", "expected exact tag on HEAD")
	return cmd
}

func newDiscoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discover <dir>",
		Short: "List every manifest-bearing directory under a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			found, err := manifest.Walk(args[0])
			if err != nil {
				return err
			}
			return printJSON(found)
		},
	}
}
