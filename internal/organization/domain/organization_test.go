package domain

import "testing"

func TestOrgValidate(t *testing.T) {
	testCases := []struct {
		name    string
		org     Org
		wantErr bool
	}{
		{name: "valid", org: Org{Name: "Acme", URLPrefix: "acme", Creator: "alice@x.com"}},
		{name: "missing name", org: Org{URLPrefix: "acme", Creator: "alice@x.com"}, wantErr: true},
		{name: "missing url prefix", org: Org{Name: "Acme", Creator: "alice@x.com"}, wantErr: true},
		{name: "missing creator", org: Org{Name: "Acme", URLPrefix: "acme"}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.org.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
