package handler

const (
	useragent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"
	referer   = "https://www.bilibili.com"
)

// 接口host可替换，单测里指到httptest
var (
	apiHost      = "https://api.bilibili.com"
	musicHost    = "https://www.bilibili.com"
	passportHost = "https://passport.bilibili.com"
	shortHost    = "https://b23.tv"
)

const (
	videoInfoPath    = "/x/web-interface/view"
	pageListPath     = "/x/player/pagelist"
	playerInfoPath   = "/x/player/wbi/v2"
	steinEdgePath    = "/x/stein/edgeinfo_v2"
	seasonInfoPath   = "/pgc/view/web/season"
	lessonInfoPath   = "/pugv/view/web/season"
	playUrlPath      = "/x/player/wbi/playurl"
	pgcPlayUrlPath   = "/pgc/player/web/playurl"
	pugvPlayUrlPath  = "/pugv/player/web/playurl"
	dmSegPath        = "/x/v2/dm/web/seg.so"
	dmHistoryPath    = "/x/v2/dm/web/history/seg.so"
	dmLegacyPath     = "/x/v1/dm/list.so"
	favFolderPath    = "/x/v3/fav/folder/info"
	favResourcePath  = "/x/v3/fav/resource/list"
	musicInfoPath    = "/audio/music-service-c/web/song/info"
	musicUrlPath     = "/audio/music-service-c/web/url"
	musicMenuPath    = "/audio/music-service-c/web/menu/info"
	musicOfMenuPath  = "/audio/music-service-c/web/song/of-menu"
	qrGeneratePath   = "/x/passport-login/web/qrcode/generate"
	qrPollPath       = "/x/passport-login/web/qrcode/poll"
	logoutPath       = "/login/exit/v2"
)

// 清晰度：登录默认请求127（8K档），未登录64（720P）
const (
	qnLogin = 127
	qnAnon  = 64
)

// fnval：16为dash单轨，4048为完整dash（杜比/无损/4K等），0=flv 1=mp4
const (
	fnvalDefault = 16
	fnvalFull    = 4048
	fnvalFlv     = 0
	fnvalMp4     = 1
)

// 音频接口type字段到音质ID的映射，未知type取-1
var audioQualityMap = map[int64]int64{
	0: 30216,
	1: 30232,
	2: 30280,
	3: 30251, // flac
}

// 歌单曲目分页固定100条
const musicMenuPageSize = 100

// 收藏夹内容分页
const favPageSize = 20
