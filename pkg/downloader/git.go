package downloader

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/podkit/pkg/errors"
	"github.com/arthur-debert/podkit/pkg/logging"
	"github.com/arthur-debert/podkit/pkg/spec"
)

const remoteName = "origin"

var mirrorRefSpecs = []config.RefSpec{
	"+refs/heads/*:refs/heads/*",
	"+refs/tags/*:refs/tags/*",
}

// GitDownloader downloads a git source through the mirror cache
type GitDownloader struct {
	url    string
	tag    string
	branch string
	commit string

	target string
	opts   Options
	cache  *Cache
	auth   transport.AuthMethod
	logger zerolog.Logger

	resolved plumbing.Hash
}

// NewGitDownloader validates src and creates a downloader into target
func NewGitDownloader(target string, src spec.Source, opts Options) (*GitDownloader, error) {
	url := src["git"]
	if url == "" {
		return nil, errors.New(errors.ErrSourceInvalid, "git source has no url")
	}
	if target == "" {
		return nil, errors.New(errors.ErrInvalidInput, "download target must not be empty")
	}
	return &GitDownloader{
		url:    url,
		tag:    src["tag"],
		branch: src["branch"],
		commit: src["commit"],
		target: target,
		opts:   opts,
		cache:  NewCache(opts),
		auth:   authFor(url),
		logger: logging.GetLogger("downloader.git").With().Str("url", url).Logger(),
	}, nil
}

// OptionsSpecific is true when a commit or tag pins the revision
func (g *GitDownloader) OptionsSpecific() bool {
	return g.commit != "" || g.tag != ""
}

// CheckoutOptions pins the downloaded commit
func (g *GitDownloader) CheckoutOptions() SpecificSource {
	if g.resolved.IsZero() {
		return nil
	}
	return SpecificSource{"git": g.url, "commit": g.resolved.String()}
}

// Download checks out commit, else tag, else branch, else the remote HEAD.
// With aggressive caching the remote is only contacted when the mirror
// cannot resolve the revision.
func (g *GitDownloader) Download(ctx context.Context) error {
	return g.download(ctx, false)
}

// DownloadHead always fetches and checks out the branch tip, or the remote
// HEAD when no branch is set
func (g *GitDownloader) DownloadHead(ctx context.Context) error {
	return g.download(ctx, true)
}

func (g *GitDownloader) download(ctx context.Context, head bool) error {
	dir := g.cache.Dir(g.url)
	unlock := g.cache.lock(dir)

	hash, err := g.updateMirror(ctx, dir, head)
	unlock()
	if err != nil {
		return err
	}

	if err := g.checkout(ctx, dir, hash); err != nil {
		return err
	}
	g.resolved = hash
	g.cache.Touch(dir)

	g.logger.Info().
		Str("target", g.target).
		Str("commit", hash.String()).
		Bool("head", head).
		Msg("Downloaded git source")

	if _, err := g.cache.Prune(); err != nil {
		g.logger.Warn().Err(err).Msg("Failed to prune download cache")
	}
	return nil
}

// updateMirror opens or creates the mirror, fetches when needed and
// resolves the revision to check out
func (g *GitDownloader) updateMirror(ctx context.Context, dir string, head bool) (plumbing.Hash, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		if repo, err = g.initMirror(dir); err != nil {
			return plumbing.ZeroHash, err
		}
		if err := g.fetch(ctx, repo); err != nil {
			return plumbing.ZeroHash, err
		}
		return g.resolve(repo, head)
	}

	if g.opts.AggressiveCache && !head {
		if hash, err := g.resolve(repo, false); err == nil {
			g.logger.Debug().Str("commit", hash.String()).Msg("Resolved from cache without fetching")
			return hash, nil
		}
	}

	if err := g.fetch(ctx, repo); err != nil {
		return plumbing.ZeroHash, err
	}
	return g.resolve(repo, head)
}

func (g *GitDownloader) initMirror(dir string) (*git.Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dir), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrCacheFailed, "failed to create cache directory")
	}
	repo, err := git.PlainInit(dir, true)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrCacheFailed, "failed to create mirror for %s", g.url)
	}
	_, err = repo.CreateRemote(&config.RemoteConfig{
		Name:  remoteName,
		URLs:  []string{g.url},
		Fetch: mirrorRefSpecs,
	})
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, errors.Wrapf(err, errors.ErrCacheFailed, "failed to configure mirror for %s", g.url)
	}
	return repo, nil
}

func (g *GitDownloader) fetch(ctx context.Context, repo *git.Repository) error {
	g.logger.Debug().Msg("Fetching")
	err := repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: remoteName,
		RefSpecs:   mirrorRefSpecs,
		Auth:       g.auth,
		Tags:       git.AllTags,
		Force:      true,
	})
	if err != nil && !stderrors.Is(err, git.NoErrAlreadyUpToDate) {
		return errors.Wrapf(err, errors.ErrFetchFailed, "failed to fetch %s", g.url).
			WithDetail("url", g.url)
	}
	return g.syncHead(ctx, repo)
}

// syncHead points the mirror HEAD at the branch the remote HEAD names
func (g *GitDownloader) syncHead(ctx context.Context, repo *git.Repository) error {
	remote, err := repo.Remote(remoteName)
	if err != nil {
		return errors.Wrap(err, errors.ErrCacheFailed, "mirror has no remote")
	}
	refs, err := remote.ListContext(ctx, &git.ListOptions{Auth: g.auth})
	if err != nil {
		return errors.Wrapf(err, errors.ErrFetchFailed, "failed to list %s", g.url).
			WithDetail("url", g.url)
	}

	var headHash plumbing.Hash
	for _, ref := range refs {
		if ref.Name() != plumbing.HEAD {
			continue
		}
		if ref.Type() == plumbing.SymbolicReference {
			return repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, ref.Target()))
		}
		headHash = ref.Hash()
	}
	if headHash.IsZero() {
		return nil
	}
	for _, ref := range refs {
		if ref.Name().IsBranch() && ref.Hash() == headHash {
			return repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, ref.Name()))
		}
	}
	return nil
}

// resolve picks commit > tag > branch > HEAD. Head downloads ignore the
// commit and tag.
func (g *GitDownloader) resolve(repo *git.Repository, head bool) (plumbing.Hash, error) {
	switch {
	case !head && g.commit != "":
		hash, err := repo.ResolveRevision(plumbing.Revision(g.commit))
		if err != nil {
			return plumbing.ZeroHash, g.notFound("commit", g.commit, err)
		}
		return *hash, nil
	case !head && g.tag != "":
		ref, err := repo.Tag(g.tag)
		if err != nil {
			return plumbing.ZeroHash, g.notFound("tag", g.tag, err)
		}
		if tag, err := repo.TagObject(ref.Hash()); err == nil {
			commit, err := tag.Commit()
			if err != nil {
				return plumbing.ZeroHash, g.notFound("tag", g.tag, err)
			}
			return commit.Hash, nil
		}
		return ref.Hash(), nil
	case g.branch != "":
		ref, err := repo.Reference(plumbing.NewBranchReferenceName(g.branch), true)
		if err != nil {
			return plumbing.ZeroHash, g.notFound("branch", g.branch, err)
		}
		return ref.Hash(), nil
	default:
		ref, err := repo.Head()
		if err != nil {
			return plumbing.ZeroHash, g.notFound("revision", "HEAD", err)
		}
		return ref.Hash(), nil
	}
}

func (g *GitDownloader) notFound(kind, name string, err error) error {
	return errors.Wrapf(err, errors.ErrFetchFailed, "%s %s not found in %s", kind, name, g.url).
		WithDetail("url", g.url).
		WithDetail(kind, name)
}

// checkout replaces target with a clone of the mirror at hash
func (g *GitDownloader) checkout(ctx context.Context, mirror string, hash plumbing.Hash) error {
	if err := os.RemoveAll(g.target); err != nil {
		return errors.Wrapf(err, errors.ErrFileRemove, "failed to clear %s", g.target)
	}
	if err := os.MkdirAll(filepath.Dir(g.target), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(g.target))
	}

	repo, err := git.PlainCloneContext(ctx, g.target, false, &git.CloneOptions{
		URL:        mirror,
		RemoteName: remoteName,
		NoCheckout: true,
		Tags:       git.AllTags,
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrFetchFailed, "failed to clone %s into %s", g.url, g.target).
			WithDetail("url", g.url)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return errors.Wrap(err, errors.ErrFetchFailed, "failed to open worktree")
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: hash, Force: true}); err != nil {
		return errors.Wrapf(err, errors.ErrFetchFailed, "failed to check out %s", hash).
			WithDetail("commit", hash.String())
	}
	return nil
}
