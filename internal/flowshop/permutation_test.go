package flowshop

import "testing"

func TestNextPermutationEnumeratesAll(t *testing.T) {
	for n := 0; n <= 5; n++ {
		p := Identity(n)
		seen := map[string]bool{}
		prev := ""
		count := 0
		for {
			key := ""
			for _, v := range p {
				key += string(rune('a' + v))
			}
			if seen[key] {
				t.Fatalf("n=%d: %v repeated", n, p)
			}
			if prev != "" && key <= prev {
				t.Fatalf("n=%d: %q not after %q", n, key, prev)
			}
			seen[key] = true
			prev = key
			count++
			if !NextPermutation(p) {
				break
			}
		}
		want := 1
		for i := 2; i <= n; i++ {
			want *= i
		}
		if count != want {
			t.Fatalf("n=%d: %d permutations, want %d", n, count, want)
		}
	}
}

func TestValidatePermutation(t *testing.T) {
	if err := ValidatePermutation([]int{2, 0, 1}, 3); err != nil {
		t.Fatal(err)
	}
	if err := ValidatePermutation(nil, 0); err != nil {
		t.Fatal(err)
	}
	if err := ValidatePermutation([]int{0, 0}, 2); err == nil {
		t.Fatal("duplicate accepted")
	}
}
