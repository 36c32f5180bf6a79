package tls

import (
	"context"
	"crypto/tls"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
	"github.com/pkg/errors"
)

const reloadDebounceInterval = 500 * time.Millisecond

var ErrNoKeyPair = errors.New("no TLS key pair loaded")

// FileKeyPairProvider serves a PEM key pair read from disk and reloads it
// when the files change. A pair that fails to load never replaces the
// current one.
type FileKeyPairProvider struct {
	certFile string
	keyFile  string
	logger   logr.Logger

	mu      sync.RWMutex
	certPEM []byte
	keyPEM  []byte
}

func NewFileKeyPairProvider(logger logr.Logger, certFile, keyFile string) *FileKeyPairProvider {
	return &FileKeyPairProvider{
		certFile: certFile,
		keyFile:  keyFile,
		logger:   logger,
	}
}

// Load reads both files and checks they form a valid pair.
func (p *FileKeyPairProvider) Load() error {
	certPEM, err := os.ReadFile(p.certFile)
	if err != nil {
		return errors.Wrapf(err, "failed to read certificate %s", p.certFile)
	}
	keyPEM, err := os.ReadFile(p.keyFile)
	if err != nil {
		return errors.Wrapf(err, "failed to read private key %s", p.keyFile)
	}
	if _, err := tls.X509KeyPair(certPEM, keyPEM); err != nil {
		return errors.Wrapf(err, "invalid key pair %s, %s", p.certFile, p.keyFile)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.certPEM, p.keyPEM = certPEM, keyPEM
	return nil
}

// TlsProvider returns the current certificate and key PEM blocks.
func (p *FileKeyPairProvider) TlsProvider() ([]byte, []byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.certPEM == nil || p.keyPEM == nil {
		return nil, nil, ErrNoKeyPair
	}
	return p.certPEM, p.keyPEM, nil
}

func (p *FileKeyPairProvider) IsReady(context.Context) bool {
	_, _, err := p.TlsProvider()
	return err == nil
}

// Watch reloads the pair on file system events until ctx is done.
// Parent directories are watched so that atomic secret volume updates are seen.
// It fails when the directories cannot be watched, the returned channel is
// closed once the watcher has stopped.
func (p *FileKeyPairProvider) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create file watcher")
	}
	dirs := map[string]struct{}{
		filepath.Dir(p.certFile): {},
		filepath.Dir(p.keyFile):  {},
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", dir)
		}
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer watcher.Close()
		p.watch(ctx, watcher)
	}()
	return done, nil
}

func (p *FileKeyPairProvider) watch(ctx context.Context, watcher *fsnotify.Watcher) {
	logger := p.logger.WithValues("cert", p.certFile, "key", p.keyFile)
	logger.V(2).Info("watching key pair")
	var debounceTimer *time.Timer
	var debounceCh <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(reloadDebounceInterval)
			debounceCh = debounceTimer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Error(err, "key pair watcher error")
		case <-debounceCh:
			debounceCh = nil
			if err := p.Load(); err != nil {
				logger.Error(err, "failed to reload key pair, keeping the current one")
			} else {
				logger.Info("key pair reloaded")
			}
		}
	}
}
