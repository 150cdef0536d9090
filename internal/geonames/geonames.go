// Package geonames loads the US postal-code coordinate table from the
// geonames.org dump, caching the archive locally so repeated runs don't
// re-download it.
package geonames

import (
	"archive/zip"
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/tlc-leads/dealerseed/internal/geo"
)

// Source is the loaded postal-code reference table: ZIP to coordinate,
// in stable file order. Read-only after Load.
type Source struct {
	zips   []string
	coords []geom.Coord
	index  map[string]int
}

// Lookup returns the coordinate for a normalized 5-digit ZIP.
func (s *Source) Lookup(zip string) (geom.Coord, bool) {
	i, ok := s.index[zip]
	if !ok {
		return nil, false
	}
	return s.coords[i], true
}

// All returns the full table as parallel slices in load order. Callers
// must not mutate the returned slices.
func (s *Source) All() ([]string, []geom.Coord) {
	return s.zips, s.coords
}

// Len reports the number of ZIPs in the table.
func (s *Source) Len() int {
	return len(s.zips)
}

// Load fetches the geonames postal dump (unless already cached under
// cacheDir), extracts the data file, and parses it into a Source. A
// download failure is fatal; there are no retries.
func Load(ctx context.Context, dumpURL, cacheDir string) (*Source, error) {
	log := zap.L().With(zap.String("component", "geonames"))

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "geonames: create cache dir %s", cacheDir)
	}

	u, err := url.Parse(dumpURL)
	if err != nil {
		return nil, eris.Wrapf(err, "geonames: parse url %s", dumpURL)
	}
	zipPath := filepath.Join(cacheDir, path.Base(u.Path))

	// Skip download if the archive is already cached with content.
	if info, err := os.Stat(zipPath); err == nil && info.Size() > 0 {
		log.Debug("archive already cached, skipping download", zap.String("path", zipPath))
	} else {
		log.Info("downloading postal code dump", zap.String("url", dumpURL))
		if err := downloadFile(ctx, dumpURL, zipPath); err != nil {
			return nil, eris.Wrap(err, "geonames: download dump")
		}
	}

	src, err := parseArchive(zipPath)
	if err != nil {
		return nil, err
	}

	log.Info("postal code table loaded",
		zap.String("path", zipPath),
		zap.Int("zips", src.Len()),
	)
	return src, nil
}

// Parse reads the tab-separated geonames postal format: country code,
// postal code, place, admin1-3 name/code pairs, latitude, longitude,
// accuracy. Rows missing either coordinate are dropped. The first
// occurrence of a postal code wins; later duplicates are ignored.
func Parse(r io.Reader) (*Source, error) {
	src := &Source{index: make(map[string]int)}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		fields := strings.Split(sc.Text(), "\t")
		if len(fields) < 11 {
			continue
		}

		latStr, lonStr := strings.TrimSpace(fields[9]), strings.TrimSpace(fields[10])
		if latStr == "" || lonStr == "" {
			continue
		}
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			continue
		}

		zip := strings.TrimSpace(fields[1])
		for len(zip) < 5 {
			zip = "0" + zip
		}
		if _, dup := src.index[zip]; dup {
			continue
		}

		src.index[zip] = len(src.zips)
		src.zips = append(src.zips, zip)
		src.coords = append(src.coords, geo.Coord(lat, lon))
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrap(err, "geonames: scan dump")
	}

	return src, nil
}

// parseArchive opens the cached ZIP and parses the first .txt entry that
// isn't the bundled readme.
func parseArchive(zipPath string) (*Source, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, eris.Wrapf(err, "geonames: open archive %s", zipPath)
	}
	defer zr.Close() //nolint:errcheck

	for _, f := range zr.File {
		name := strings.ToLower(path.Base(f.Name))
		if !strings.HasSuffix(name, ".txt") || strings.HasPrefix(name, "readme") {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, eris.Wrapf(err, "geonames: open entry %s", f.Name)
		}
		src, perr := Parse(rc)
		_ = rc.Close()
		if perr != nil {
			return nil, perr
		}
		return src, nil
	}

	return nil, eris.Errorf("geonames: no data file found in %s", zipPath)
}

// downloadFile downloads a URL to a local file.
func downloadFile(ctx context.Context, url, dest string) error {
	client := &http.Client{Timeout: 10 * time.Minute}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return eris.Wrap(err, "build request")
	}

	resp, err := client.Do(req)
	if err != nil {
		return eris.Wrap(err, "download")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("download returned status %d", resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return eris.Wrap(err, "create file")
	}
	defer f.Close() //nolint:errcheck

	if _, err := io.Copy(f, resp.Body); err != nil {
		return eris.Wrap(err, "write file")
	}

	return nil
}
