// ABOUTME: Confirmation chime played on the system default output after a switch.
// ABOUTME: Uses malgo (miniaudio bindings) for playback and beep/go-audio for decoding.

package audio

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gen2brain/malgo"

	"github.com/777genius/switch-audio/internal/config"
	"github.com/777genius/switch-audio/internal/logging"
)

const (
	toneFrequency  = 880.0
	toneSampleRate = 48000
	toneDuration   = 180 * time.Millisecond
	toneFade       = 15 * time.Millisecond
)

// Chime plays short sounds on the system default output device.
type Chime struct {
	volume  float64
	timeout time.Duration
	mu      sync.Mutex
}

// NewChime creates a chime with volume in [0, 1].
func NewChime(volume float64) *Chime {
	return &Chime{
		volume:  volume,
		timeout: 10 * time.Second,
	}
}

// Play plays the built-in tone for config.ChimeBuiltin, otherwise the sound file at source.
func (c *Chime) Play(source string) error {
	if source == config.ChimeBuiltin {
		return c.PlayTone()
	}
	return c.PlayFile(source)
}

// PlayTone plays the built-in confirmation tone.
func (c *Chime) PlayTone() error {
	samples := toneSamples(toneFrequency, toneSampleRate, toneDuration, toneFade)
	return c.play(samples, toneSampleRate, 1)
}

// PlayFile decodes and plays an MP3, WAV, FLAC, OGG/Vorbis or AIFF file.
func (c *Chime) PlayFile(soundPath string) error {
	if _, err := os.Stat(soundPath); os.IsNotExist(err) {
		return fmt.Errorf("sound file not found: %s", soundPath)
	}

	samples, sampleRate, channels, err := decodeAudio(soundPath)
	if err != nil {
		return fmt.Errorf("failed to decode audio: %w", err)
	}
	return c.play(samples, sampleRate, channels)
}

func (c *Chime) play(samples []int16, sampleRate uint32, channels int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(samples) == 0 || channels <= 0 {
		return fmt.Errorf("nothing to play")
	}

	applyVolume(samples, c.volume)
	audioData := samplesToBytes(samples)

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("failed to init audio context: %w", err)
	}
	defer func() {
		_ = ctx.Uninit()
		ctx.Free()
	}()

	// No DeviceID: play on whatever the system default is now.
	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatS16
	deviceConfig.Playback.Channels = uint32(channels)
	deviceConfig.SampleRate = sampleRate
	deviceConfig.PeriodSizeInFrames = 2048
	deviceConfig.Periods = 4
	deviceConfig.Alsa.NoMMap = 1

	var pos int
	done := make(chan struct{})
	var doneOnce sync.Once

	onData := func(output, _ []byte, frameCount uint32) {
		n := int(frameCount) * channels * 2
		if pos+n > len(audioData) {
			n = len(audioData) - pos
		}
		if n > 0 {
			copy(output, audioData[pos:pos+n])
			pos += n
		}
		for i := n; i < len(output); i++ {
			output[i] = 0
		}
		if pos >= len(audioData) {
			doneOnce.Do(func() { close(done) })
		}
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: onData,
	})
	if err != nil {
		return fmt.Errorf("failed to init audio device: %w", err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return fmt.Errorf("failed to start audio device: %w", err)
	}

	select {
	case <-done:
		// Let the device drain its last period.
		time.Sleep(150 * time.Millisecond)
		logging.Debug("Chime playback completed")
	case <-time.After(c.timeout):
		logging.Warn("Chime playback timed out after %s", c.timeout)
	}

	_ = device.Stop()
	return nil
}

// toneSamples renders a mono sine tone with linear fade in and out.
func toneSamples(freq float64, sampleRate int, dur, fade time.Duration) []int16 {
	total := int(float64(sampleRate) * dur.Seconds())
	fadeLen := int(float64(sampleRate) * fade.Seconds())
	samples := make([]int16, total)

	for i := range samples {
		gain := 0.5
		if fadeLen > 0 {
			if i < fadeLen {
				gain *= float64(i) / float64(fadeLen)
			} else if tail := total - 1 - i; tail < fadeLen {
				gain *= float64(tail) / float64(fadeLen)
			}
		}
		v := math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
		samples[i] = int16(v * gain * math.MaxInt16)
	}
	return samples
}

func applyVolume(samples []int16, volume float64) {
	if volume >= 1.0 {
		return
	}
	if volume < 0 {
		volume = 0
	}
	for i := range samples {
		samples[i] = int16(float64(samples[i]) * volume)
	}
}

// samplesToBytes converts int16 samples to bytes (little-endian)
func samplesToBytes(samples []int16) []byte {
	bytes := make([]byte, len(samples)*2)
	for i, s := range samples {
		bytes[i*2] = byte(s)
		bytes[i*2+1] = byte(s >> 8)
	}
	return bytes
}
