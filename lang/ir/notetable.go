package ir

import "github.com/dolthub/swiss"

// noteFreqs maps every note literal spelling MelodyScript accepts to its
// frequency in Hz, rounded to the nearest integer. The table is fixed data,
// not recomputed from an equal-temperament formula, so the rounding of each
// entry (e.g. G0 as 25) stays stable across releases.
//
// Backed by swiss.Map rather than a builtin map: every note literal the IC
// generator lowers does exactly one of these lookups, the same hot-path
// reasoning behind using it for sema's scope bindings.
var noteFreqs = swissFromMap(map[string]int32{
	"C0": 16, "C#0": 17, "Db0": 17, "D0": 18, "D#0": 19, "Eb0": 19,
	"E0": 21, "F0": 22, "F#0": 23, "Gb0": 23, "G0": 25, "G#0": 26,
	"Ab0": 26, "A0": 27, "A#0": 29, "Bb0": 29, "B0": 31,

	"C1": 33, "C#1": 35, "Db1": 35, "D1": 37, "D#1": 39, "Eb1": 39,
	"E1": 41, "F1": 44, "F#1": 46, "Gb1": 46, "G1": 49, "G#1": 52,
	"Ab1": 52, "A1": 55, "A#1": 58, "Bb1": 58, "B1": 62,

	"C2": 65, "C#2": 69, "Db2": 69, "D2": 73, "D#2": 78, "Eb2": 78,
	"E2": 82, "F2": 87, "F#2": 93, "Gb2": 93, "G2": 98, "G#2": 104,
	"Ab2": 104, "A2": 110, "A#2": 117, "Bb2": 117, "B2": 123,

	"C3": 131, "C#3": 139, "Db3": 139, "D3": 147, "D#3": 156, "Eb3": 156,
	"E3": 165, "F3": 175, "F#3": 185, "Gb3": 185, "G3": 196, "G#3": 208,
	"Ab3": 208, "A3": 220, "A#3": 233, "Bb3": 233, "B3": 247,

	"C4": 262, "C#4": 277, "Db4": 277, "D4": 294, "D#4": 311, "Eb4": 311,
	"E4": 330, "F4": 349, "F#4": 370, "Gb4": 370, "G4": 392, "G#4": 415,
	"Ab4": 415, "A4": 440, "A#4": 466, "Bb4": 466, "B4": 494,

	"C5": 523, "C#5": 554, "Db5": 554, "D5": 587, "D#5": 622, "Eb5": 622,
	"E5": 659, "F5": 698, "F#5": 740, "Gb5": 740, "G5": 784, "G#5": 831,
	"Ab5": 831, "A5": 880, "A#5": 932, "Bb5": 932, "B5": 988,

	"C6": 1047, "C#6": 1109, "Db6": 1109, "D6": 1175, "D#6": 1245, "Eb6": 1245,
	"E6": 1319, "F6": 1397, "F#6": 1480, "Gb6": 1480, "G6": 1568, "G#6": 1661,
	"Ab6": 1661, "A6": 1760, "A#6": 1865, "Bb6": 1865, "B6": 1976,

	"C7": 2093, "C#7": 2217, "Db7": 2217, "D7": 2349, "D#7": 2489, "Eb7": 2489,
	"E7": 2637, "F7": 2794, "F#7": 2960, "Gb7": 2960, "G7": 3136, "G#7": 3322,
	"Ab7": 3322, "A7": 3520, "A#7": 3729, "Bb7": 3729, "B7": 3951,

	"C8": 4186, "C#8": 4435, "Db8": 4435, "D8": 4699, "D#8": 4978, "Eb8": 4978,
	"E8": 5274, "F8": 5588, "F#8": 5920, "Gb8": 5920, "G8": 6272, "G#8": 6645,
	"Ab8": 6645, "A8": 7040, "A#8": 7459, "Bb8": 7459, "B8": 7902,
})

func swissFromMap(m map[string]int32) *swiss.Map[string, int32] {
	sm := swiss.NewMap[string, int32](uint32(len(m)))
	for k, v := range m {
		sm.Put(k, v)
	}
	return sm
}

// NoteFrequency returns the frequency in Hz for a note spelling (e.g. "A4",
// "Db3"), and whether that spelling exists in the table.
func NoteFrequency(name string) (int32, bool) {
	return noteFreqs.Get(name)
}
