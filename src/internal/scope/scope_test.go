package scope

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/jss"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/jss/jsstest"
)

func newRepo() *jsstest.Repository {
	repo := jsstest.New()
	repo.Add(jss.ComputerGroup, `<computer_group><id>3</id><name>Testing</name></computer_group>`)
	repo.Add(jss.ComputerGroup, `<computer_group><id>4</id><name>Production</name></computer_group>`)
	repo.Add(jss.MobileDeviceGroup, `<mobile_device_group><id>5</id><name>iPads</name></mobile_device_group>`)

	repo.Add(jss.Policy, `<policy><general><id>1</id><name>Install Goat Simulator-1.2.0</name></general>
		<scope><all_computers>false</all_computers>
			<computer_groups><computer_group><id>3</id><name>Testing</name></computer_group></computer_groups>
			<exclusions><computer_groups><computer_group><id>4</id><name>Production</name></computer_group></computer_groups></exclusions>
		</scope>
		<package_configuration><packages><package><id>11</id><name>Goat Simulator-1.2.0.pkg</name></package></packages></package_configuration></policy>`)
	repo.Add(jss.Policy, `<policy><general><id>2</id><name>Inventory</name></general>
		<scope><all_computers>true</all_computers></scope></policy>`)
	repo.Add(jss.Policy, `<policy><general><id>6</id><name>Install Nethack-3.4.3</name></general>
		<scope><all_computers>false</all_computers>
			<computer_groups><computer_group><id>4</id><name>Production</name></computer_group></computer_groups>
		</scope></policy>`)

	repo.Add(jss.OSXConfigurationProfile, `<os_x_configuration_profile><general><id>8</id><name>Wi-Fi</name></general>
		<scope><computer_groups><computer_group><id>3</id><name>Testing</name></computer_group></computer_groups></scope></os_x_configuration_profile>`)
	repo.Add(jss.MobileDeviceConfigurationProfile, `<configuration_profile><general><id>9</id><name>Mail</name></general>
		<scope><all_mobile_devices>false</all_mobile_devices>
			<mobile_device_groups><mobile_device_group><id>5</id><name>iPads</name></mobile_device_group></mobile_device_groups></scope></configuration_profile>`)

	repo.Add(jss.ComputerConfiguration, `<computer_configuration><general><id>2</id><name>Lab Image</name></general>
		<packages><package><id>11</id><name>Goat Simulator-1.2.0.pkg</name></package></packages></computer_configuration>`)
	repo.AddPackage(11, "Goat Simulator-1.2.0.pkg")
	return repo
}

func TestScanner_Scoped(t *testing.T) {
	out, err := NewScanner(newRepo()).Scoped(context.Background(), Computers, jss.ByName("Testing"))
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"Policies scoped to Testing\nID: 1\tNAME: Install Goat Simulator-1.2.0\n",
		"Policies scoped to all computers\nID: 2\tNAME: Inventory\n",
		"Configuration profiles scoped to Testing\nID: 8\tNAME: Wi-Fi\n",
		"Configuration profiles scoped to all computers\nNo results found.\n",
	}, "\n"), out)
}

func TestScanner_MobileScoped(t *testing.T) {
	out, err := NewScanner(newRepo()).Scoped(context.Background(), MobileDevices, jss.ByID(5))
	require.NoError(t, err)

	assert.Contains(t, out, "Profiles scoped to iPads\nID: 9\tNAME: Mail\n")
	assert.Contains(t, out, "Profiles scoped to all mobile devices\nNo results found.\n")
}

func TestScanner_Excluded(t *testing.T) {
	out, err := NewScanner(newRepo()).Excluded(context.Background(), Computers, jss.ByName("Production"))
	require.NoError(t, err)

	assert.Contains(t, out, "Policies with Production excluded from scope.\nID: 1\tNAME: Install Goat Simulator-1.2.0\n")
	assert.Contains(t, out, "Configuration Profiles with Production excluded from scope.\nNo results found.\n")
}

func TestScanner_GroupNotFound(t *testing.T) {
	_, err := NewScanner(newRepo()).Scoped(context.Background(), Computers, jss.ByName("Missing"))
	assert.True(t, errors.Is(err, jss.ErrNotFound), "got %v", err)
}

func TestScanner_Diff(t *testing.T) {
	repo := newRepo()
	scanner := NewScanner(repo)

	diff, err := scanner.Diff(context.Background(), Computers, jss.ByName("Testing"), jss.ByName("Production"))
	require.NoError(t, err)

	assert.Contains(t, diff, "-Policies scoped to Testing\n")
	assert.Contains(t, diff, "+Policies scoped to Production\n")
	assert.Contains(t, diff, "+ID: 6\tNAME: Install Nethack-3.4.3\n")
	assert.Contains(t, diff, " Policies scoped to all computers\n")
}

func TestScanner_RetrievesEachTypeOnce(t *testing.T) {
	repo := newRepo()
	scanner := NewScanner(repo)
	retrievals := map[string]int{}
	scanner.Progress = func(t jss.Type) func(int) func() {
		retrievals[t.Path]++
		return nil
	}

	_, err := scanner.Diff(context.Background(), Computers, jss.ByID(3), jss.ByID(4))
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"policies": 1, "osxconfigurationprofiles": 1}, retrievals)
}

func TestScanner_Installs(t *testing.T) {
	out, err := NewScanner(newRepo()).Installs(context.Background(), "Goat*")
	require.NoError(t, err)

	assert.Equal(t,
		"Policies which install 'Goat*'\nID: 1\tNAME: Install Goat Simulator-1.2.0\n"+
			"\n"+
			"Imaging configs which install 'Goat*'\nID: 2\tNAME: Lab Image\n", out)
}

func TestScanner_InstallsNoPackage(t *testing.T) {
	out, err := NewScanner(newRepo()).Installs(context.Background(), "Missing.pkg")
	require.NoError(t, err)

	assert.Contains(t, out, "Policies which install 'Missing.pkg'\nNo results found.\n")
}
