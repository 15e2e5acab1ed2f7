package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/GoArmGo/randimg/internal/core/ports/mocks"
	"github.com/GoArmGo/randimg/internal/domain"
	"github.com/GoArmGo/randimg/internal/logger"
)

// notificationMatcher сравнивает уведомления без учета ID и времени
type notificationMatcher struct {
	level   domain.NotificationLevel
	message string
}

func notification(level domain.NotificationLevel, message string) gomock.Matcher {
	return notificationMatcher{level: level, message: message}
}

func (m notificationMatcher) Matches(x any) bool {
	n, ok := x.(domain.Notification)
	return ok && n.Level == m.level && n.Message == m.message
}

func (m notificationMatcher) String() string {
	return fmt.Sprintf("%s notification %q", m.level, m.message)
}

func record(slug string) *domain.ImageRecord {
	return &domain.ImageRecord{
		ID:               "id-" + slug,
		AltDescription:   "photo of " + slug,
		URLs:             domain.ImageURLs{Full: "https://x/" + slug + "/f.jpg", Regular: "https://x/" + slug + "/r.jpg"},
		AlternativeSlugs: domain.AlternativeSlugs{En: slug},
	}
}

type ImageViewerTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	fetcher   *mocks.MockImageFetcher
	clipboard *mocks.MockClipboard
	saver     *mocks.MockFileSaver
	notifier  *mocks.MockNotifier

	viewer ImageViewer
	ctx    context.Context
}

func (s *ImageViewerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ctx = context.Background()

	s.fetcher = mocks.NewMockImageFetcher(s.ctrl)
	s.clipboard = mocks.NewMockClipboard(s.ctrl)
	s.saver = mocks.NewMockFileSaver(s.ctrl)
	s.notifier = mocks.NewMockNotifier(s.ctrl)

	s.viewer = NewImageViewer(s.fetcher, s.clipboard, s.saver, s.notifier, logger.Discard())
}

func (s *ImageViewerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestImageViewerTestSuite(t *testing.T) {
	suite.Run(t, new(ImageViewerTestSuite))
}

// load загружает фото в контроллер
func (s *ImageViewerTestSuite) load(rec *domain.ImageRecord) {
	s.fetcher.EXPECT().FetchRandomImage(gomock.Any()).Return(rec, nil)
	s.Require().NoError(s.viewer.RequestImage(s.ctx))
}

func (s *ImageViewerTestSuite) TestInitialState() {
	state := s.viewer.State()
	s.False(state.HasImage())
	s.False(state.Loading)
}

func (s *ImageViewerTestSuite) TestRequestImage_Success() {
	rec := record("cat")

	s.fetcher.EXPECT().FetchRandomImage(s.ctx).DoAndReturn(
		func(ctx context.Context) (*domain.ImageRecord, error) {
			s.True(s.viewer.State().Loading, "loading must be set while fetching")
			return rec, nil
		},
	)

	s.NoError(s.viewer.RequestImage(s.ctx))

	state := s.viewer.State()
	s.False(state.Loading)
	s.Same(rec, state.Record)
	s.Equal(*rec, *state.Record)
}

func (s *ImageViewerTestSuite) TestRequestImage_ReplacesPrevious() {
	s.load(record("cat"))
	s.load(record("dog"))

	s.Equal("dog", s.viewer.State().Record.AlternativeSlugs.En)
}

func (s *ImageViewerTestSuite) TestRequestImage_FailureClearsLoading() {
	prev := record("cat")
	s.load(prev)

	s.fetcher.EXPECT().FetchRandomImage(s.ctx).DoAndReturn(
		func(ctx context.Context) (*domain.ImageRecord, error) {
			s.True(s.viewer.State().Loading)
			return nil, errors.New("connection refused")
		},
	)
	s.notifier.EXPECT().Notify(s.ctx, notification(domain.NotificationError, "Error fetching images: connection refused"))

	err := s.viewer.RequestImage(s.ctx)
	s.Error(err)

	state := s.viewer.State()
	s.False(state.Loading)
	s.Same(prev, state.Record)
}

func (s *ImageViewerTestSuite) TestRequestImage_InvalidBody() {
	invalid := fmt.Errorf("%w: Key: 'ImageRecord.URLs.Full' Error:Field validation for 'Full' failed on the 'required' tag", domain.ErrInvalidImage)

	s.fetcher.EXPECT().FetchRandomImage(s.ctx).Return(nil, invalid)
	s.notifier.EXPECT().Notify(s.ctx, notification(domain.NotificationError, "Error fetching images: "+invalid.Error()))

	err := s.viewer.RequestImage(s.ctx)
	s.ErrorIs(err, domain.ErrInvalidImage)
	s.False(s.viewer.State().HasImage())
	s.False(s.viewer.State().Loading)
}

func (s *ImageViewerTestSuite) TestRequestImage_NotificationFailureIgnored() {
	s.fetcher.EXPECT().FetchRandomImage(s.ctx).Return(nil, errors.New("timeout"))
	s.notifier.EXPECT().Notify(s.ctx, gomock.Any()).Return(errors.New("broker down"))

	err := s.viewer.RequestImage(s.ctx)
	s.ErrorContains(err, "timeout")
	s.False(s.viewer.State().Loading)
}

// Старый запрос завершается позже нового: его результат отбрасывается
func (s *ImageViewerTestSuite) TestRequestImage_StaleResponseDiscarded() {
	first, second := record("first"), record("second")
	started := make(chan struct{})
	release := make(chan struct{})

	gomock.InOrder(
		s.fetcher.EXPECT().FetchRandomImage(s.ctx).DoAndReturn(
			func(ctx context.Context) (*domain.ImageRecord, error) {
				close(started)
				<-release
				return first, nil
			},
		),
		s.fetcher.EXPECT().FetchRandomImage(s.ctx).Return(second, nil),
	)

	firstErr := make(chan error, 1)
	go func() { firstErr <- s.viewer.RequestImage(s.ctx) }()
	<-started

	s.NoError(s.viewer.RequestImage(s.ctx))
	s.Same(second, s.viewer.State().Record)

	close(release)
	s.ErrorIs(<-firstErr, ErrStaleResponse)

	state := s.viewer.State()
	s.Same(second, state.Record)
	s.False(state.Loading)
}

// Старый запрос завершается первым: loading остается, пока не завершится последний
func (s *ImageViewerTestSuite) TestRequestImage_LoadingUntilLatestResolves() {
	first, second := record("first"), record("second")
	started1, started2 := make(chan struct{}), make(chan struct{})
	release1, release2 := make(chan struct{}), make(chan struct{})

	gomock.InOrder(
		s.fetcher.EXPECT().FetchRandomImage(s.ctx).DoAndReturn(
			func(ctx context.Context) (*domain.ImageRecord, error) {
				close(started1)
				<-release1
				return first, nil
			},
		),
		s.fetcher.EXPECT().FetchRandomImage(s.ctx).DoAndReturn(
			func(ctx context.Context) (*domain.ImageRecord, error) {
				close(started2)
				<-release2
				return second, nil
			},
		),
	)

	errs := make(chan error, 2)
	go func() { errs <- s.viewer.RequestImage(s.ctx) }()
	<-started1
	go func() { errs <- s.viewer.RequestImage(s.ctx) }()
	<-started2

	close(release1)
	s.ErrorIs(<-errs, ErrStaleResponse)
	s.True(s.viewer.State().Loading)
	s.False(s.viewer.State().HasImage())

	close(release2)
	s.NoError(<-errs)
	s.False(s.viewer.State().Loading)
	s.Same(second, s.viewer.State().Record)
}

// Ошибка устаревшего запроса не показывается пользователю
func (s *ImageViewerTestSuite) TestRequestImage_StaleFailureNotNotified() {
	started := make(chan struct{})
	release := make(chan struct{})
	latest := record("latest")

	gomock.InOrder(
		s.fetcher.EXPECT().FetchRandomImage(s.ctx).DoAndReturn(
			func(ctx context.Context) (*domain.ImageRecord, error) {
				close(started)
				<-release
				return nil, errors.New("late failure")
			},
		),
		s.fetcher.EXPECT().FetchRandomImage(s.ctx).Return(latest, nil),
	)

	firstErr := make(chan error, 1)
	go func() { firstErr <- s.viewer.RequestImage(s.ctx) }()
	<-started
	s.NoError(s.viewer.RequestImage(s.ctx))

	close(release)
	s.ErrorIs(<-firstErr, ErrStaleResponse)
	s.Same(latest, s.viewer.State().Record)
}

// loading включается сразу при выпуске запроса, до вызова fetcher
func (s *ImageViewerTestSuite) TestBeginRequest_SetsLoadingImmediately() {
	seq := s.viewer.BeginRequest()
	s.True(s.viewer.State().Loading)
	s.False(s.viewer.State().HasImage())

	rec := record("cat")
	s.fetcher.EXPECT().FetchRandomImage(s.ctx).Return(rec, nil)

	s.NoError(s.viewer.CompleteRequest(s.ctx, seq))
	state := s.viewer.State()
	s.False(state.Loading)
	s.Same(rec, state.Record)
}

// Запрос, выпущенный раньше, устаревает даже если еще не начал выполняться
func (s *ImageViewerTestSuite) TestCompleteRequest_OlderSeqIsStale() {
	older := s.viewer.BeginRequest()
	newer := s.viewer.BeginRequest()
	s.Greater(newer, older)

	s.fetcher.EXPECT().FetchRandomImage(s.ctx).Return(record("old"), nil)
	s.ErrorIs(s.viewer.CompleteRequest(s.ctx, older), ErrStaleResponse)
	s.True(s.viewer.State().Loading)
	s.False(s.viewer.State().HasImage())

	rec := record("new")
	s.fetcher.EXPECT().FetchRandomImage(s.ctx).Return(rec, nil)
	s.NoError(s.viewer.CompleteRequest(s.ctx, newer))
	s.False(s.viewer.State().Loading)
	s.Same(rec, s.viewer.State().Record)
}

func (s *ImageViewerTestSuite) TestCopyLink_NoImage() {
	s.notifier.EXPECT().Notify(s.ctx, notification(domain.NotificationError, MsgNoImage))

	s.ErrorIs(s.viewer.CopyLink(s.ctx), ErrNoImage)
}

func (s *ImageViewerTestSuite) TestCopyLink_Success() {
	rec := record("cat")
	s.load(rec)

	s.clipboard.EXPECT().WriteText(rec.URLs.Full).Return(nil)
	s.notifier.EXPECT().Notify(s.ctx, notification(domain.NotificationSuccess, MsgLinkCopied))

	s.NoError(s.viewer.CopyLink(s.ctx))
}

func (s *ImageViewerTestSuite) TestCopyLink_ClipboardFailure() {
	s.load(record("cat"))

	s.clipboard.EXPECT().WriteText(gomock.Any()).Return(errors.New("no display"))
	s.notifier.EXPECT().Notify(s.ctx, notification(domain.NotificationError, "Error copying link: no display"))

	s.Error(s.viewer.CopyLink(s.ctx))
}

func (s *ImageViewerTestSuite) TestDownloadImage_NoImage() {
	s.notifier.EXPECT().Notify(s.ctx, notification(domain.NotificationError, MsgNoImage))

	s.ErrorIs(s.viewer.DownloadImage(s.ctx), ErrNoImage)
}

func (s *ImageViewerTestSuite) TestDownloadImage_Success() {
	rec := record("mountain")
	s.load(rec)

	s.saver.EXPECT().Save(s.ctx, rec.URLs.Full, "mountain.jpg").Return("downloads/mountain.jpg", nil)
	s.notifier.EXPECT().Notify(s.ctx, notification(domain.NotificationSuccess, MsgImageDownloaded))

	s.NoError(s.viewer.DownloadImage(s.ctx))
}

// Уведомление приходит на каждое скачивание, включая первое
func (s *ImageViewerTestSuite) TestDownloadImage_NotifiesEveryTime() {
	s.load(record("mountain"))

	s.saver.EXPECT().Save(s.ctx, gomock.Any(), "mountain.jpg").Return("downloads/mountain.jpg", nil).Times(2)
	s.notifier.EXPECT().Notify(s.ctx, notification(domain.NotificationSuccess, MsgImageDownloaded)).Times(2)

	s.NoError(s.viewer.DownloadImage(s.ctx))
	s.NoError(s.viewer.DownloadImage(s.ctx))
}

func (s *ImageViewerTestSuite) TestDownloadImage_SaveFailure() {
	s.load(record("mountain"))

	s.saver.EXPECT().Save(s.ctx, gomock.Any(), gomock.Any()).Return("", errors.New("disk full"))
	s.notifier.EXPECT().Notify(s.ctx, notification(domain.NotificationError, "Error downloading image: disk full"))

	s.ErrorContains(s.viewer.DownloadImage(s.ctx), "disk full")
}
