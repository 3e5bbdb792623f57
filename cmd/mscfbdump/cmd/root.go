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
	"github.com/spf13/cobra"

	"github.com/oonxt/gocfb"
)

func Execute() error {
	root := &cobra.Command{
		Use:   "mscfbdump",
		Short: "Inspect Microsoft Compound File Binary containers",
	}
	root.AddCommand(newListCommand())
	root.AddCommand(newInfoCommand())
	root.AddCommand(newCatCommand())
	return root.Execute()
}

// openAndParse is the shared entry path for every subcommand: open the
// file, parse it fully, and hand back the container.
func openAndParse(path string) (*mscfb.Container, func() error, error) {
	src, closer, err := mscfb.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	c, err := mscfb.Open(src)
	if err != nil {
		closer()
		return nil, nil, err
	}
	if err := c.Parse(); err != nil {
		closer()
		return nil, nil, err
	}
	return c, closer, nil
}
