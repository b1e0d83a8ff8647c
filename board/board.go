// SPDX-License-Identifier: EPL-2.0

// Package board keeps the buttons of a soundboard in memory and plays the
// sound bound to a button when it is pressed.
package board

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"

	"github.com/ik5/soundboard/audio"
)

var (
	ErrUnknownButton    = errors.New("unknown button")
	ErrSoundNotFound    = errors.New("sound file not found")
	ErrUnsupportedSound = errors.New("unsupported sound file")
	ErrUnsupportedImage = errors.New("unsupported image file")
)

// ImageExtensions are the thumbnails a button may carry.
var ImageExtensions = []string{"png", "jpg", "jpeg"}

// ClipDecoder loads a sound file. *soundboard.Decoder satisfies it.
type ClipDecoder interface {
	Supports(path string) bool
	Decode(path string) (*audio.Clip, error)
}

// ClipPlayer plays a clip to completion. *playback.Player satisfies it.
type ClipPlayer interface {
	Play(ctx context.Context, clip *audio.Clip) error
}

type Button struct {
	ID    uuid.UUID
	Label string
	Sound string
	Image string
}

// Board is the ordered set of buttons. Presses are serialized: a second
// Press waits until the first clip has finished.
type Board struct {
	dec    ClipDecoder
	player ClipPlayer

	mu      sync.RWMutex
	buttons []Button

	playMu sync.Mutex

	clips *cache.Cache
}

type Option func(*Board)

// WithClipCache keeps decoded clips for ttl after their last decode. An
// entry is keyed by path, size and modification time, so a file edited on
// disk is decoded again.
func WithClipCache(ttl time.Duration) Option {
	return func(b *Board) {
		if ttl > 0 {
			b.clips = cache.New(ttl, 2*ttl)
		}
	}
}

func New(dec ClipDecoder, player ClipPlayer, opts ...Option) *Board {
	b := &Board{dec: dec, player: player}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Add appends a button for sound. label defaults to the sound's file name
// and image may be empty.
func (b *Board) Add(label, sound, image string) (Button, error) {
	fi, err := os.Stat(sound)
	if err != nil {
		return Button{}, fmt.Errorf("%w: %w", ErrSoundNotFound, err)
	}
	if fi.IsDir() {
		return Button{}, fmt.Errorf("%w: %s is a directory", ErrSoundNotFound, sound)
	}
	if !b.dec.Supports(sound) {
		return Button{}, fmt.Errorf("%w: %s", ErrUnsupportedSound, filepath.Base(sound))
	}

	if image != "" {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(image), "."))
		if !slices.Contains(ImageExtensions, ext) {
			return Button{}, fmt.Errorf("%w: %s", ErrUnsupportedImage, filepath.Base(image))
		}
	}

	if label == "" {
		label = strings.TrimSuffix(filepath.Base(sound), filepath.Ext(sound))
	}

	btn := Button{
		ID:    uuid.New(),
		Label: label,
		Sound: sound,
		Image: image,
	}

	b.mu.Lock()
	b.buttons = append(b.buttons, btn)
	b.mu.Unlock()

	return btn, nil
}

// Buttons returns a copy of the buttons in insertion order.
func (b *Board) Buttons() []Button {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return slices.Clone(b.buttons)
}

func (b *Board) Button(id uuid.UUID) (Button, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i := b.index(id)
	if i < 0 {
		return Button{}, false
	}
	return b.buttons[i], true
}

func (b *Board) Remove(id uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownButton, id)
	}
	b.buttons = slices.Delete(b.buttons, i, i+1)

	return nil
}

func (b *Board) index(id uuid.UUID) int {
	_, i, _ := lo.FindIndexOf(b.buttons, func(btn Button) bool { return btn.ID == id })
	return i
}

func (b *Board) load(path string) (*audio.Clip, error) {
	if b.clips == nil {
		return b.dec.Decode(path)
	}

	fi, err := os.Stat(path)
	if err != nil {
		return b.dec.Decode(path)
	}
	key := fmt.Sprintf("%s|%d|%d", path, fi.Size(), fi.ModTime().UnixNano())

	if v, ok := b.clips.Get(key); ok {
		return v.(*audio.Clip), nil
	}

	clip, err := b.dec.Decode(path)
	if err != nil {
		return nil, err
	}
	b.clips.Set(key, clip, cache.DefaultExpiration)

	return clip, nil
}

// Press decodes the button's sound and plays it, blocking until done.
func (b *Board) Press(ctx context.Context, id uuid.UUID) error {
	btn, ok := b.Button(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownButton, id)
	}

	b.playMu.Lock()
	defer b.playMu.Unlock()

	clip, err := b.load(btn.Sound)
	if err != nil {
		return fmt.Errorf("%s: %w", btn.Label, err)
	}

	if err := b.player.Play(ctx, clip); err != nil {
		return fmt.Errorf("%s: %w", btn.Label, err)
	}

	return nil
}
