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

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "info <file>",
		Short:        "Print container version, entry count and total stream size",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runInfo,
	}
}

func runInfo(_ *cobra.Command, args []string) error {
	c, closer, err := openAndParse(args[0])
	if err != nil {
		return err
	}
	defer closer()

	entries := c.Entries()
	var streamBytes uint64
	for _, e := range entries {
		if e.ObjectType.String() == "stream" {
			streamBytes += e.StreamSize
		}
	}
	fmt.Printf("version:       %d\n", c.Version())
	fmt.Printf("entries:       %d\n", len(entries))
	fmt.Printf("stream bytes:  %s\n", humanize.Bytes(streamBytes))
	return nil
}
