package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mediafs/pkg/log"
	"mediafs/pkg/media/pipeline"
	"mediafs/pkg/meta"
	"mediafs/pkg/models"
	"mediafs/pkg/vpath"

	"github.com/rs/zerolog"
)

const (
	dirPerm = 0750

	// GlobalTag identifies the privileged administrator sandbox.
	GlobalTag = "global"
)

// SystemFolders are the top-level directories of the global root that are
// structurally required and immune to delete and rename.
var SystemFolders = []string{"themes", "plugins", "assets", "fonts", "dl-manager", "form-uploads"}

// Options tune per-deployment policy choices.
type Options struct {
	// ReadOnlyBrowsing permits listing on a member sandbox even while
	// member uploads are disabled. Off by default: members are locked out
	// entirely, mutations and listings alike.
	ReadOnlyBrowsing bool
}

// Service is the media engine façade: one instance binds a sandbox root, the
// metadata store and the upload pipeline, and exposes the full operation
// set. Instances are cheap; one per request is fine.
type Service struct {
	root       *vpath.Root
	store      meta.Store
	settings   models.Settings
	pipe       *pipeline.Pipeline
	privileged bool
	opts       Options
	logger     zerolog.Logger
}

// NewService builds a Service for the privileged global sandbox rooted at
// baseDir. The settings document is loaded once, here.
func NewService(baseDir, tempDir string, store meta.Store) (*Service, error) {
	root, err := vpath.NewRoot(GlobalTag, baseDir, SystemFolders)
	if err != nil {
		return nil, StorageError{Op: "bind root", Err: err}
	}
	settings, err := store.Settings()
	if err != nil {
		return nil, StorageError{Op: "load settings", Err: err}
	}
	return &Service{
		root:       root,
		store:      store,
		settings:   settings,
		pipe:       pipeline.New(tempDir, settings),
		privileged: true,
		logger:     log.With("media"),
	}, nil
}

// NewMemberService builds a Service for one member's sandbox beneath
// baseDir/member/<name>, creating the directory lazily on first use. The
// directory name is derived deterministically from the sanitized identity so
// two identities can never share a root.
func NewMemberService(baseDir, tempDir string, store meta.Store, identity models.Identity, opts Options) (*Service, error) {
	name := vpath.SanitizeMemberName(identity.Username, identity.ID)
	memberDir := filepath.Join(baseDir, "member", name)

	if err := os.MkdirAll(memberDir, dirPerm); err != nil {
		return nil, StorageError{Op: "create member root", Err: err}
	}

	root, err := vpath.NewRoot("member:"+name, memberDir, nil)
	if err != nil {
		return nil, StorageError{Op: "bind member root", Err: err}
	}
	settings, err := store.Settings()
	if err != nil {
		return nil, StorageError{Op: "load settings", Err: err}
	}
	return &Service{
		root:       root,
		store:      store,
		settings:   settings,
		pipe:       pipeline.New(tempDir, settings),
		privileged: identity.Admin,
		opts:       opts,
		logger:     log.With("media").With().Str("root", "member:"+name).Logger(),
	}, nil
}

// Root returns the bound sandbox root.
func (s *Service) Root() *vpath.Root {
	return s.root
}

// Settings returns the configuration snapshot the service was built with.
func (s *Service) Settings() models.Settings {
	return s.settings
}

// checkMutate enforces the member-uploads policy flag on mutating operations.
func (s *Service) checkMutate(operation string) error {
	if s.privileged {
		return nil
	}
	if !s.settings.MemberUploadsEnabled {
		s.logger.Debug().Str("operation", operation).Msg("Member uploads disabled, mutation denied")
		return PermissionError{Operation: operation}
	}
	return nil
}

// checkList enforces the listing policy: read-only browsing may stay open
// even while mutations are denied, depending on deployment choice.
func (s *Service) checkList() error {
	if s.privileged || s.settings.MemberUploadsEnabled || s.opts.ReadOnlyBrowsing {
		return nil
	}
	return PermissionError{Operation: "list"}
}

// resolve normalizes and validates a virtual path against the sandbox root.
func (s *Service) resolve(virtual string) (abs string, rel string, err error) {
	rel, err = vpath.Normalize(virtual)
	if err != nil {
		return "", "", err
	}
	abs, err = vpath.Resolve(s.root, rel)
	if err != nil {
		var traversal vpath.TraversalError
		if errors.As(err, &traversal) {
			return "", "", err
		}
		s.logger.Error().Err(err).Str("path", virtual).Msg("Path resolution failed")
		return "", "", StorageError{Op: "resolve", Err: err}
	}
	return abs, rel, nil
}

// implicitCategory returns the system category a path inherits from its
// top-level folder, if any.
func (s *Service) implicitCategory(rel string) string {
	if s.root.Tag != GlobalTag {
		return ""
	}
	first := rel
	if idx := strings.IndexByte(rel, '/'); idx >= 0 {
		first = rel[:idx]
	}
	for _, folder := range SystemFolders {
		if first == folder {
			return folder
		}
	}
	return ""
}

// joinRel joins a normalized parent path and a single segment.
func joinRel(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

// EnsureSystemFolders creates the protected top-level directories under the
// global root so a fresh deployment starts with its reserved structure.
func (s *Service) EnsureSystemFolders() error {
	if s.root.Tag != GlobalTag {
		return nil
	}
	for _, name := range SystemFolders {
		dir := filepath.Join(s.root.Dir, name)
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			s.logger.Error().Err(err).Str("dir", name).Msg("Failed to create system folder")
			return StorageError{Op: fmt.Sprintf("create system folder %s", name), Err: err}
		}
	}
	return nil
}
