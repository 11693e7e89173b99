// Copyright © 2016 Abcum Ltd
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

package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abcum/tempo/cnf"
	"github.com/abcum/tempo/log"
)

var opts *cnf.Options

var mainCmd = &cobra.Command{
	Use:   "tempo",
	Short: "A univariate timeseries engine and command console",
}

func init() {

	mainCmd.AddCommand(
		startCmd,
		versionCmd,
	)

	opts = &cnf.Options{}

	mainCmd.PersistentFlags().StringVar(&opts.DB.Path, "db-path", "memory", flag("db-path"))
	mainCmd.PersistentFlags().StringVar(&opts.DB.Base, "db-base", "tempo", flag("db-base"))
	mainCmd.PersistentFlags().StringVarP(&opts.Node.Host, "bind", "b", "0.0.0.0", flag("bind"))
	mainCmd.PersistentFlags().StringVarP(&opts.Node.Name, "name", "n", "", flag("name"))
	mainCmd.PersistentFlags().IntVarP(&opts.Port.Tcp, "port", "p", 33693, flag("port"))
	mainCmd.PersistentFlags().StringVar(&opts.Logging.Level, "log-level", "info", "The minimum logging level to output.")
	mainCmd.PersistentFlags().StringVar(&opts.Logging.Output, "log-output", "stdout", "Where to send log output: none, stdout, stderr, or stackdriver.")
	mainCmd.PersistentFlags().StringVar(&opts.Logging.Format, "log-format", "text", "How to encode log output: text or json.")

	cobra.OnInitialize(setup)

}

// Run parses flags and executes the requested subcommand.
func Run() {
	if err := mainCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(-1)
	}
}
