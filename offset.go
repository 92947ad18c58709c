// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datetime

// fixOffset converts a local timestamp (civil fields read as if they were
// UTC) into an instant in zone z. guess is an offset in minutes believed to
// be close to correct; in an overlap it selects which of the two instants is
// returned.
//
// Local times inside a gap do not exist. They resolve to the instant
// localTS - min(o2, o3), reported with offset max(o2, o3), which lies at or
// after the end of the gap.
func fixOffset(localTS int64, guess int, z Zone) (ts int64, offset int) {
	utcGuess := localTS - int64(guess)*msPerMinute

	o2 := z.Offset(utcGuess)
	if o2 == guess {
		return utcGuess, o2
	}

	// The guess crossed a transition; retry with the offset observed there.
	utcGuess -= int64(o2-guess) * msPerMinute
	o3 := z.Offset(utcGuess)
	if o2 == o3 {
		return utcGuess, o2
	}

	return localTS - int64(min(o2, o3))*msPerMinute, max(o2, o3)
}

// objToTS converts civil fields to an instant in z, using offset as the
// initial guess.
func objToTS(g Gregorian, offset int, z Zone) (ts int64, o int) {
	return fixOffset(localTS(g), offset, z)
}
