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
	"os"

	"github.com/spf13/cobra"
)

func newCatCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "cat <file> <entry-index>",
		Short:        "Dump one stream's raw bytes to stdout",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         runCat,
	}
}

func runCat(_ *cobra.Command, args []string) error {
	c, closer, err := openAndParse(args[0])
	if err != nil {
		return err
	}
	defer closer()

	var idx int
	if _, err := fmt.Sscanf(args[1], "%d", &idx); err != nil {
		return fmt.Errorf("entry index must be an integer: %w", err)
	}
	entries := c.Entries()
	if idx < 0 || idx >= len(entries) {
		return fmt.Errorf("entry index %d out of range (have %d entries)", idx, len(entries))
	}

	data, err := c.Read(entries[idx])
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
