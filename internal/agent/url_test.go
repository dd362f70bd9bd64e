package agent

import "testing"

func TestPackageNameFromURL(t *testing.T) {
	cases := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "https://aur.archlinux.org/packages/yay", want: "yay"},
		{raw: "https://aur.archlinux.org/packages/neovim-nightly-bin/", want: "neovim-nightly-bin"},
		{raw: "https://aur.archlinux.org/packages/", wantErr: true},
		{raw: "https://aur.archlinux.org/account/yay", wantErr: true},
		{raw: "https://example.com/packages/yay", wantErr: true},
		{raw: "::not a url::", wantErr: true},
	}
	for _, tc := range cases {
		got, err := PackageNameFromURL(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Errorf("PackageNameFromURL(%q) = %q, want error", tc.raw, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("PackageNameFromURL(%q) error: %v", tc.raw, err)
			continue
		}
		if got != tc.want {
			t.Errorf("PackageNameFromURL(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
