package repository

import "testing"

func TestMergeProfileInfo(t *testing.T) {
	cases := []struct {
		name     string
		existing string
		newInfo  string
		want     string
	}{
		{
			name:     "first fact",
			existing: "",
			newInfo:  "Has a dog named Rex.",
			want:     "Has a dog named Rex.",
		},
		{
			name:     "appends second fact",
			existing: "Has a dog named Rex.",
			newInfo:  "Favorite color is blue.",
			want:     "Has a dog named Rex. Favorite color is blue.",
		},
		{
			name:     "trims surrounding whitespace",
			existing: "Has a dog named Rex.",
			newInfo:  "Likes dinosaurs.  ",
			want:     "Has a dog named Rex. Likes dinosaurs.",
		},
		{
			name:     "both empty",
			existing: "",
			newInfo:  "",
			want:     "",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := MergeProfileInfo(c.existing, c.newInfo)
			if got != c.want {
				t.Errorf("MergeProfileInfo(%q, %q) = %q, want %q", c.existing, c.newInfo, got, c.want)
			}
		})
	}
}

func TestMergeProfileInfoGrowsMonotonically(t *testing.T) {
	info := ""
	facts := []string{"Fact one.", "Fact two.", "Fact three."}

	for _, f := range facts {
		merged := MergeProfileInfo(info, f)
		if len(merged) < len(info) {
			t.Fatalf("profile shrank: %q -> %q", info, merged)
		}
		info = merged
	}

	want := "Fact one. Fact two. Fact three."
	if info != want {
		t.Errorf("accumulated profile = %q, want %q", info, want)
	}
}
