package promote

import (
	"strings"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/jss"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/pkginfo"
)

// triggers are the policy fields that run a policy automatically.
var triggers = []string{
	"trigger_checkin",
	"trigger_enrollment_complete",
	"trigger_login",
	"trigger_logout",
	"trigger_network_state_changed",
	"trigger_startup",
	"trigger_other",
}

// InstallingPolicies returns the policies that install at least one package.
func InstallingPolicies(policies []*jss.Object) []*jss.Object {
	var result []*jss.Object
	for _, policy := range policies {
		if len(policy.References(PackagesPath)) > 0 {
			result = append(result, policy)
		}
	}
	return result
}

// UpdatablePolicies returns the policies installing a package for which
// a related package with a newer version exists.
func UpdatablePolicies(policies []*jss.Object, packages []pkginfo.Record) []*jss.Object {
	var result []*jss.Object
	for _, policy := range policies {
		for _, ref := range policy.References(PackagesPath) {
			installed := pkginfo.NewRecord(ref.ID(), ref.Name())
			if !Match(installed, packages).Empty() {
				result = append(result, policy)
				break
			}
		}
	}
	return result
}

// NeedsLogFlush reports whether a policy runs less often than "Ongoing"
// from an automatic trigger, in which case computers that already ran it
// will not pick up the new package until its logs are flushed.
func NeedsLogFlush(policy *jss.Object) bool {
	if policy.FindText("general/frequency") == "Ongoing" {
		return false
	}
	for _, trigger := range triggers {
		value := policy.FindText("general/" + trigger)
		if value != "" && !strings.EqualFold(value, "false") {
			return true
		}
	}
	return false
}
