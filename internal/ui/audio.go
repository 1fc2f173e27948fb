package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundType identifies a board sound.
type SoundType int

const (
	SoundDrop SoundType = iota
	SoundRejected
	SoundGameEnd
)

const sampleRate = 44100

// AudioManager plays short procedural sounds for board events.
type AudioManager struct {
	context *audio.Context
	sounds  map[SoundType][]byte
	enabled bool
	volume  float64
}

// NewAudioManager creates an audio manager. Only one may exist per process.
func NewAudioManager(enabled bool) *AudioManager {
	am := &AudioManager{
		context: audio.NewContext(sampleRate),
		sounds: map[SoundType][]byte{
			SoundDrop:     synth(0.08, 0.3, func(t float64) float64 { return math.Sin(2*math.Pi*440*t) * math.Exp(-t*30) }),
			SoundRejected: synth(0.1, 0.3, func(t float64) float64 { return square(150, t) * (1 - t/0.1) }),
			SoundGameEnd:  synth(0.4, 0.5, chord),
		},
		enabled: enabled,
		volume:  0.5,
	}
	return am
}

// synth renders fn over duration seconds as 16-bit stereo PCM.
func synth(duration, amplitude float64, fn func(t float64) float64) []byte {
	samples := int(sampleRate * duration)
	data := make([]byte, samples*4)
	for i := 0; i < samples; i++ {
		v := fn(float64(i)/sampleRate) * amplitude
		v = math.Max(-1, math.Min(1, v))
		s := int16(v * 32767)
		data[i*4] = byte(s)
		data[i*4+1] = byte(s >> 8)
		data[i*4+2] = byte(s)
		data[i*4+3] = byte(s >> 8)
	}
	return data
}

func square(freq, t float64) float64 {
	if math.Sin(2*math.Pi*freq*t) >= 0 {
		return 1
	}
	return -1
}

// chord is a fading C major triad.
func chord(t float64) float64 {
	env := math.Exp(-t * 4)
	return (math.Sin(2*math.Pi*261.63*t) + math.Sin(2*math.Pi*329.63*t) + math.Sin(2*math.Pi*392*t)) / 3 * env
}

// Play plays a sound effect.
func (am *AudioManager) Play(sound SoundType) {
	if am == nil || !am.enabled {
		return
	}
	data, ok := am.sounds[sound]
	if !ok {
		return
	}
	// Create a new player for each play (allows overlapping sounds)
	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(am.volume)
	player.Play()
}

// SetEnabled enables or disables audio.
func (am *AudioManager) SetEnabled(enabled bool) {
	am.enabled = enabled
}
