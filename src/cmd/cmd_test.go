package cmd

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/jss"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/jss/jsstest"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/ui"
)

// fakeServer serves commands from memory.
type fakeServer struct {
	*jsstest.Repository
}

func (fakeServer) PolicyLogURL(id int) string {
	return fmt.Sprintf("https://jss.example.com/policies.html?id=%d&o=l", id)
}

func newFakeRepo() *jsstest.Repository {
	repo := jsstest.New()
	repo.AddPackage(11, "Goat Simulator-1.2.0.pkg")
	repo.AddPackage(12, "Goat Simulator-1.3.1.pkg")
	repo.AddPackage(13, "Goat Simulator-1.0.0.pkg")
	repo.AddPackage(20, "Nethack-3.4.3.dmg")

	repo.Add(jss.ComputerGroup, `<computer_group><id>3</id><name>Testing</name></computer_group>`)
	repo.Add(jss.ComputerGroup, `<computer_group><id>4</id><name>Production</name></computer_group>`)

	repo.Add(jss.Policy, `<policy><general><id>7</id><name>Install Goat Simulator-1.2.0</name>
		<frequency>Once per computer</frequency><trigger_checkin>true</trigger_checkin></general>
		<scope><all_computers>false</all_computers>
			<computer_groups><computer_group><id>3</id><name>Testing</name></computer_group></computer_groups></scope>
		<package_configuration><packages><size>1</size>
			<package><id>11</id><name>Goat Simulator-1.2.0.pkg</name><action>Install</action></package>
		</packages></package_configuration></policy>`)
	repo.Add(jss.Policy, `<policy><general><id>8</id><name>Install Nethack-3.4.3</name><frequency>Ongoing</frequency></general>
		<scope><all_computers>true</all_computers></scope>
		<package_configuration><packages><size>1</size>
			<package><id>20</id><name>Nethack-3.4.3.dmg</name></package>
		</packages></package_configuration></policy>`)
	return repo
}

// useServer points connectServer at repo for the duration of the test.
func useServer(t *testing.T, repo *jsstest.Repository) {
	t.Helper()
	previous := connectServer
	connectServer = func() (server, error) { return fakeServer{repo}, nil }
	t.Cleanup(func() { connectServer = previous })
}

// resetFlags restores every flag to its default so state does not leak
// between executions of the shared command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

type execution struct {
	stdout string
	stderr string
	err    error
}

// execute runs the command line with stdin and captures its output.
func execute(t *testing.T, stdin string, args ...string) execution {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	restore := ui.SetOutput(&stdout, &stderr)
	defer restore()

	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	err := rootCmd.Execute()

	return execution{stdout: stdout.String(), stderr: stderr.String(), err: err}
}
