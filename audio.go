package main

import (
	"encoding/binary"

	"github.com/veandco/go-sdl2/sdl"
)

const (
	sampleRate = 48000
	toneHz     = 440
	toneVolume = 3000
)

var audioDevice sdl.AudioDeviceID

// InitAudio opens an audio device for the sound timer beep.
func InitAudio() error {
	spec := &sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  512,
	}

	dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return err
	}

	audioDevice = dev
	sdl.PauseAudioDevice(dev, false)

	return nil
}

// QueueTone queues one frame of square wave while the sound timer runs.
// Called at 60 Hz alongside the timer decrement.
func QueueTone() {
	if audioDevice == 0 || !VM.SoundActive() {
		return
	}

	const (
		samples    = sampleRate / 60
		halfPeriod = sampleRate / toneHz / 2
	)

	buf := make([]byte, samples*2)
	for i := 0; i < samples; i++ {
		v := int16(toneVolume)
		if (i/halfPeriod)%2 == 1 {
			v = -toneVolume
		}
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(v))
	}

	sdl.QueueAudio(audioDevice, buf)
}
