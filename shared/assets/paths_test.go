package assets

import "testing"

func TestUniquePath(t *testing.T) {
	existing := map[string]bool{
		"Assets/SavedCustomColliders/CylinderCollider.asset":   true,
		"Assets/SavedCustomColliders/CylinderCollider 1.asset": true,
		"Assets/Props/Barrel.asset":                            true,
	}
	taken := func(p string) bool { return existing[p] }

	tests := []struct {
		folder, name string
		want         string
	}{
		{"Assets/SavedCustomColliders/", "", "Assets/SavedCustomColliders/CylinderCollider 2.asset"},
		{"Assets/SavedCustomColliders", "CylinderCollider", "Assets/SavedCustomColliders/CylinderCollider 2.asset"},
		{"Assets/Props/", "Barrel", "Assets/Props/Barrel 1.asset"},
		{"Assets/Props/", "Barrel.asset", "Assets/Props/Barrel 1.asset"},
		{"Assets/Props/", "Crate", "Assets/Props/Crate.asset"},
		{`Assets\Props\`, "Pipe", "Assets/Props/Pipe.asset"},
		{"", "a/b", "Assets/SavedCustomColliders/a_b.asset"},
	}

	for _, tt := range tests {
		got := UniquePath(tt.folder, tt.name, taken)
		if got != tt.want {
			t.Errorf("UniquePath(%q, %q) = %q, want %q", tt.folder, tt.name, got, tt.want)
		}
	}
}

func TestResolveFolder(t *testing.T) {
	folders := map[string]bool{
		"Assets":                      true,
		"Assets/SavedCustomColliders": true,
		"Assets/Props":                true,
	}
	isFolder := func(p string) bool { return folders[p] }

	tests := []struct {
		selection string
		want      string
	}{
		{"", "Assets/SavedCustomColliders/"},
		{"Assets/Props", "Assets/Props/"},
		{"Assets/Props/", "Assets/Props/"},
		{"Assets/Props/Barrel.asset", "Assets/Props/"},
		{"Assets/Missing/Thing.asset", "Assets/SavedCustomColliders/"},
		{"Assets", "Assets/"},
	}

	for _, tt := range tests {
		got := ResolveFolder(tt.selection, isFolder)
		if got != tt.want {
			t.Errorf("ResolveFolder(%q) = %q, want %q", tt.selection, got, tt.want)
		}
	}
}
