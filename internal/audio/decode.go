package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
)

// decodeAudio decodes an audio file and returns interleaved samples, sample rate and channel count
func decodeAudio(soundPath string) ([]int16, uint32, int, error) {
	ext := strings.ToLower(filepath.Ext(soundPath))
	if !supportedExt(ext) {
		return nil, 0, 0, fmt.Errorf("unsupported audio format: %s", ext)
	}

	f, err := os.Open(soundPath)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		gain     = 1.0
	)
	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
		// beep's wav decoder scales 16-bit PCM by 1<<16-1, half of full range.
		gain = wavGain
	case ".flac":
		streamer, format, err = flac.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".aiff", ".aif":
		return decodeAIFF(f)
	}
	if err != nil {
		return nil, 0, 0, err
	}
	defer streamer.Close()

	samples := streamToSamples(streamer, format.NumChannels, gain)
	return samples, uint32(format.SampleRate), channelsOut(format.NumChannels), nil
}

const wavGain = 2.0

func supportedExt(ext string) bool {
	switch ext {
	case ".mp3", ".wav", ".flac", ".ogg", ".aiff", ".aif":
		return true
	}
	return false
}

// channelsOut is the channel count streamToSamples produces.
func channelsOut(numChannels int) int {
	if numChannels >= 2 {
		return 2
	}
	return 1
}

func decodeAIFF(f *os.File) ([]int16, uint32, int, error) {
	decoder := aiff.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, 0, 0, fmt.Errorf("invalid AIFF file")
	}

	decoder.ReadInfo()

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to read AIFF data: %w", err)
	}

	samples := intBufferToSamples(buf, int(decoder.BitDepth))
	return samples, uint32(decoder.SampleRate), int(decoder.NumChans), nil
}

// streamToSamples drains a beep streamer into interleaved int16 samples scaled by gain.
// Mono sources keep the left channel; stereo sources keep both.
func streamToSamples(streamer beep.Streamer, numChannels int, gain float64) []int16 {
	var all []int16
	buffer := make([][2]float64, 512)

	for {
		n, ok := streamer.Stream(buffer)
		for i := 0; i < n; i++ {
			all = append(all, floatToInt16(buffer[i][0]*gain))
			if numChannels >= 2 {
				all = append(all, floatToInt16(buffer[i][1]*gain))
			}
		}
		if !ok || n == 0 {
			break
		}
	}

	return all
}

func floatToInt16(v float64) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(v * 32767)
}

// intBufferToSamples scales go-audio PCM of the given bit depth to int16
func intBufferToSamples(buf *goaudio.IntBuffer, bitDepth int) []int16 {
	samples := make([]int16, len(buf.Data))

	var shift int
	switch bitDepth {
	case 8:
		shift = -8
	case 24:
		shift = 8
	case 32:
		shift = 16
	}

	for i, v := range buf.Data {
		switch {
		case shift < 0:
			samples[i] = int16(v << uint(-shift))
		default:
			samples[i] = int16(v >> uint(shift))
		}
	}

	return samples
}
