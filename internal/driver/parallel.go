package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"macroessentials/internal/diag"
	"macroessentials/internal/source"
	"macroessentials/internal/trace"
)

// SourceExt is the extension of analysed files.
const SourceExt = ".swift"

// ListSourceFiles возвращает отсортированный список всех *.swift файлов в директории.
// Скрытые каталоги (.build, .git) пропускаются.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// Analyze loads and analyses a single file.
func Analyze(ctx context.Context, path string, opts Options) (*source.FileSet, *FileResult, error) {
	fileSet := source.NewFileSetWithBase(filepath.Dir(path))
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, nil, err
	}
	done := opts.Timer.Track("analyze")
	res := AnalyzeFile(ctx, fileSet, id, opts)
	done(res.Path)
	return fileSet, res, nil
}

// AnalyzeDir analyses every source file under dir in parallel. Files are
// loaded sequentially so FileIDs follow the sorted path order; results are
// indexed the same way. A file that cannot be read yields a result with an
// IOLoadFileError diagnostic.
func AnalyzeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []*FileResult, error) {
	span, ctx := trace.Start(ctx, trace.ScopeDriver, "analyze-dir")
	defer span.End("")

	observe := func(name string, status PhaseStatus) {
		if opts.Observer != nil {
			opts.Observer(PhaseEvent{Name: name, Status: status})
		}
	}

	observe("list", PhaseStart)
	doneList := opts.Timer.Track("list")
	files, err := ListSourceFiles(dir)
	doneList(strconv.Itoa(len(files)) + " files")
	observe("list", PhaseEnd)
	if err != nil {
		return nil, nil, err
	}
	span.WithExtra("files", strconv.Itoa(len(files)))

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}
	for _, path := range files {
		opts.Events.emit(path, StageQueued, StatusQueued)
	}

	// Создаём FileSet и предзагружаем все файлы
	observe("load", PhaseStart)
	doneLoad := opts.Timer.Track("load")
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			// Сохраняем ошибку загрузки; пустой виртуальный файл даёт диагностике путь
			loadErrors[path] = err
			fileIDs[path] = fileSet.AddVirtual(path, nil)
			continue
		}
		fileIDs[path] = fileID
	}
	doneLoad("")
	observe("load", PhaseEnd)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	// сессия создаётся до запуска воркеров, чтобы они делили один счётчик
	opts.session()

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]*FileResult, len(files))

	observe("analyze", PhaseStart)
	doneAnalyze := opts.Timer.Track("analyze")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.New(diag.SevError, diag.IOLoadFileError, source.Span{File: fileIDs[path]},
					"failed to load file: "+loadErr.Error()))
				results[i] = &FileResult{Path: path, FileID: fileIDs[path], Bag: bag}
				opts.Events.finish(results[i])
				return nil
			}

			results[i] = AnalyzeFile(gctx, fileSet, fileIDs[path], opts)
			opts.Events.finish(results[i])
			return nil
		})
	}

	err = g.Wait()
	doneAnalyze(strconv.Itoa(len(files)) + " files")
	observe("analyze", PhaseEnd)
	if err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// MergeBags collects the diagnostics of all results into one sorted bag.
func MergeBags(results []*FileResult, maxDiagnostics int) *diag.Bag {
	out := diag.NewBag(maxDiagnostics)
	for _, r := range results {
		if r == nil || r.Bag == nil {
			continue
		}
		for _, d := range r.Bag.Items() {
			if !out.Add(d) {
				break
			}
		}
	}
	out.Sort()
	return out
}
