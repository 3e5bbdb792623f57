// Copyright 2013 Richard Lehane. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "list <file>",
		Short:        "List the directory entries of a container",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runList,
	}
}

func runList(_ *cobra.Command, args []string) error {
	c, closer, err := openAndParse(args[0])
	if err != nil {
		return err
	}
	defer closer()

	for i, e := range c.Entries() {
		fmt.Printf("%4d  %-10s  %12s  %s\n", i, e.ObjectType, humanize.Bytes(e.StreamSize), e.Name)
	}
	return nil
}
