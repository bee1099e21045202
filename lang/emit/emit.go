// Package emit renders a quadruple sequence into a standalone artifact: a
// small Python program that embeds the quadruples as literal data next to a
// fixed interpreter loop. String forms of operands are reintroduced here, at
// the emitter boundary, and nowhere else.
package emit

import (
	"fmt"
	"strings"

	"github.com/syncali/melodyscript/lang/ir"
)

// PygameBackend and WinsoundBackend are the audio backend tags Emit accepts,
// surfaced to the driver via internal/config.Config.AudioBackend.
const (
	PygameBackend   = "pygame"
	WinsoundBackend = "winsound"
)

// Emit renders code as a self-contained target-artifact program. backend
// selects which runtime template plays the instruction stream's play/rest
// calls; an empty or unrecognized backend falls back to PygameBackend.
func Emit(code []ir.Quadruple, backend string) string {
	var b strings.Builder
	if backend == WinsoundBackend {
		b.WriteString(winsoundHeader)
	} else {
		b.WriteString(header)
	}
	b.WriteString("instructions = [\n")
	for _, q := range code {
		fmt.Fprintf(&b, "    (%s, %s, %s, %s),\n", pyStr(string(q.Op)), pyOperand(q.Arg1), pyOperand(q.Arg2), pyOperand(q.Result))
	}
	b.WriteString("]\n")
	if backend == WinsoundBackend {
		b.WriteString(winsoundRuntime)
	} else {
		b.WriteString(runtime)
	}
	return b.String()
}

func pyStr(s string) string {
	return "'" + s + "'"
}

// pyOperand renders a single Operand as Python literal source: None for an
// empty slot, a bare integer literal for IntLit, and a quoted string for a
// name or label, matching the interpreter's stringly-typed lookup rule.
func pyOperand(o ir.Operand) string {
	switch o.Kind {
	case ir.OperandNone:
		return "None"
	case ir.OperandInt:
		return fmt.Sprintf("%d", o.Int)
	default:
		return pyStr(o.Name)
	}
}

const header = `import pygame
import numpy as np
import time

`

// runtime is the fixed interpreter template appended after the literal
// instruction list: it resolves labels, walks the program counter, and
// implements play/rest against pygame's mixer.
const runtime = `
pygame.mixer.pre_init(44100, -16, 2, 512)
pygame.init()

label_positions = {}
for i, ins in enumerate(instructions):
    if ins[0] == 'label':
        label_positions[ins[1]] = i

env = {}
params = []
pc = 0


def value(x):
    if x is None:
        return None
    if isinstance(x, int):
        return x
    if isinstance(x, str) and x.lstrip('-').isdigit():
        return int(x)
    return env.get(x, 0)


def generate_tone(freq, duration_ms):
    sample_rate = 44100
    n_samples = int(sample_rate * (duration_ms / 1000.0))
    t = np.linspace(0, duration_ms / 1000.0, n_samples, False)
    wave = np.sin(2 * np.pi * freq * t) * 4096
    wave = wave.astype(np.int16)
    return np.column_stack((wave, wave))


while pc < len(instructions):
    op, a1, a2, res = instructions[pc]

    if op == 'label':
        pc += 1
        continue

    if op == '=':
        env[res] = value(a1)

    elif op in ('+', '-', '*', '/'):
        v1 = value(a1)
        v2 = value(a2)
        if op == '+':
            env[res] = v1 + v2
        elif op == '-':
            env[res] = v1 - v2
        elif op == '*':
            env[res] = v1 * v2
        else:
            if v2 == 0:
                v2 = 1
            q = abs(v1) // abs(v2)
            env[res] = q if (v1 < 0) == (v2 < 0) else -q

    elif op in ('>', '<', '=='):
        v1 = value(a1)
        v2 = value(a2)
        if op == '>':
            env[res] = 1 if v1 > v2 else 0
        elif op == '<':
            env[res] = 1 if v1 < v2 else 0
        else:
            env[res] = 1 if v1 == v2 else 0

    elif op == 'PARAM':
        params.append(value(a1))

    elif op == 'CALL':
        if a1 == 'play':
            freq = params[-2]
            dur = params[-1]
            if freq > 0:
                tone = generate_tone(freq, dur)
                sound = pygame.sndarray.make_sound(tone)
                sound.play()
            pygame.time.wait(int(dur))
            params.clear()
        elif a1 == 'rest':
            dur = params[-1]
            pygame.time.wait(int(dur))
            params.clear()

    elif op == 'jumpt':
        if value(a1) != 0:
            pc = label_positions[a2]
            continue

    elif op == 'jump':
        pc = label_positions[a1]
        continue

    pc += 1

pygame.quit()
`

const winsoundHeader = `import winsound
import time

`

// winsoundRuntime mirrors runtime's interpreter loop but targets
// winsound.Beep instead of pygame's mixer, so the emitted artifact has no
// third-party Python dependency at all. A note below winsound.Beep's valid
// frequency floor (37 Hz) is treated as silence, matching pygame's own
// "freq > 0" play-vs-rest test above.
const winsoundRuntime = `
label_positions = {}
for i, ins in enumerate(instructions):
    if ins[0] == 'label':
        label_positions[ins[1]] = i

env = {}
params = []
pc = 0


def value(x):
    if x is None:
        return None
    if isinstance(x, int):
        return x
    if isinstance(x, str) and x.lstrip('-').isdigit():
        return int(x)
    return env.get(x, 0)


while pc < len(instructions):
    op, a1, a2, res = instructions[pc]

    if op == 'label':
        pc += 1
        continue

    if op == '=':
        env[res] = value(a1)

    elif op in ('+', '-', '*', '/'):
        v1 = value(a1)
        v2 = value(a2)
        if op == '+':
            env[res] = v1 + v2
        elif op == '-':
            env[res] = v1 - v2
        elif op == '*':
            env[res] = v1 * v2
        else:
            if v2 == 0:
                v2 = 1
            q = abs(v1) // abs(v2)
            env[res] = q if (v1 < 0) == (v2 < 0) else -q

    elif op in ('>', '<', '=='):
        v1 = value(a1)
        v2 = value(a2)
        if op == '>':
            env[res] = 1 if v1 > v2 else 0
        elif op == '<':
            env[res] = 1 if v1 < v2 else 0
        else:
            env[res] = 1 if v1 == v2 else 0

    elif op == 'PARAM':
        params.append(value(a1))

    elif op == 'CALL':
        if a1 == 'play':
            freq = params[-2]
            dur = params[-1]
            if freq >= 37:
                winsound.Beep(int(freq), int(dur))
            else:
                time.sleep(dur / 1000.0)
            params.clear()
        elif a1 == 'rest':
            dur = params[-1]
            time.sleep(dur / 1000.0)
            params.clear()

    elif op == 'jumpt':
        if value(a1) != 0:
            pc = label_positions[a2]
            continue

    elif op == 'jump':
        pc = label_positions[a1]
        continue

    pc += 1
`
