// apps/go-scorer/internal/game/marks.go
//
// True game feedback, used by the strict rules.

package game

import "github.com/robalobadob/wordle/apps/go-scorer/internal/words"

// Score implements the standard two-pass feedback algorithm.
//
// Pass 1:
//   - Mark exact matches as hits.
//   - Count the remaining (non-hit) answer letters.
//
// Pass 2:
//   - For each non-hit guess letter: if the answer still has an unused copy,
//     mark present and consume it; otherwise mark miss.
func Score(answer, guess words.Word) Marks {
	var res Marks
	var counts [256]uint8

	for i := 0; i < words.Len; i++ {
		if guess[i] == answer[i] {
			res[i] = MarkHit
		} else {
			counts[answer[i]]++
		}
	}

	for i := 0; i < words.Len; i++ {
		if res[i] == MarkHit {
			continue
		}
		if c := guess[i]; counts[c] > 0 {
			res[i] = MarkPresent
			counts[c]--
		}
	}
	return res
}

// AllHit reports whether every letter was a hit.
func (m Marks) AllHit() bool {
	for _, x := range m {
		if x != MarkHit {
			return false
		}
	}
	return true
}

func (m Marks) String() string {
	var b [words.Len]byte
	for i, x := range m {
		b[i] = '0' + byte(x)
	}
	return string(b[:])
}
