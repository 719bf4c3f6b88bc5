package i18n

// Message keys shared by every locale
const (
	KeyPlaylistNew           = "playlist_new"
	KeyPlaylistOverwrite     = "playlist_overwrite"
	KeyPlaylistCreationLimit = "playlist_creation_limit"
	KeyPlaylistFail          = "playlist_fail"
	KeyPlaylistRemoveSuccess = "playlist_remove_success"
	KeyPlaylistRemoveMissing = "playlist_remove_not_exists"
	KeyPlaylistRemoveFail    = "playlist_remove_fail"
	KeyPlaylistLoadSuccess   = "playlist_load_success"
	KeyPlaylistEmpty         = "playlist_empty_error"
	KeyPlaylistInvalidName   = "playlist_invalid_name"
	KeyNoPlaylist            = "no_playlist"
	KeyLanguageChange        = "language_change"
	KeyVolumeChanged         = "volume_changed"
	KeyVolumeInvalid         = "volume_invalid_value"
	KeySearchModeYouTube     = "searchmode_youtube"
	KeySearchModeSoundCloud  = "searchmode_soundcloud"
	KeyEmptyQueue            = "empty_queue"
	KeyMaximumQueue          = "maximum_queue"
	KeyPlaybackUnavailable   = "playback_unavailable"
	KeyInvalidInput          = "invalid_input"
	KeyStorageFail           = "storage_fail"
	KeyInternalError         = "internal_error"
)

var english = map[string]string{
	KeyPlaylistNew:           "Saved new playlist: %s",
	KeyPlaylistOverwrite:     "Overwrote playlist: %s",
	KeyPlaylistCreationLimit: "This server already has the maximum of %d playlists",
	KeyPlaylistFail:          "Failed to save the playlist",
	KeyPlaylistRemoveSuccess: "Playlist removed",
	KeyPlaylistRemoveMissing: "Playlist does not exist: %s",
	KeyPlaylistRemoveFail:    "Failed to remove the playlist",
	KeyPlaylistLoadSuccess:   "Loaded %d tracks from playlist: %s",
	KeyPlaylistEmpty:         "The playlist is empty or does not exist",
	KeyPlaylistInvalidName:   "That playlist name cannot be used",
	KeyNoPlaylist:            "This server has no playlists",
	KeyLanguageChange:        "Language changed to English",
	KeyVolumeChanged:         "Volume set to %d%%",
	KeyVolumeInvalid:         "Volume must be between 0 and 100",
	KeySearchModeYouTube:     "Search platform set to YouTube",
	KeySearchModeSoundCloud:  "Search platform set to SoundCloud",
	KeyEmptyQueue:            "Nothing is playing right now",
	KeyMaximumQueue:          "The queue is full",
	KeyPlaybackUnavailable:   "Playback is not available right now",
	KeyInvalidInput:          "That value is not supported",
	KeyStorageFail:           "Settings could not be saved, please try again later",
	KeyInternalError:         "Something went wrong",
}

var korean = map[string]string{
	KeyPlaylistNew:           "새 플레이리스트를 저장했습니다: %s",
	KeyPlaylistOverwrite:     "플레이리스트를 덮어썼습니다: %s",
	KeyPlaylistCreationLimit: "이 서버는 이미 최대 %d개의 플레이리스트를 가지고 있습니다",
	KeyPlaylistFail:          "플레이리스트 저장에 실패했습니다",
	KeyPlaylistRemoveSuccess: "플레이리스트를 삭제했습니다",
	KeyPlaylistRemoveMissing: "존재하지 않는 플레이리스트입니다: %s",
	KeyPlaylistRemoveFail:    "플레이리스트 삭제에 실패했습니다",
	KeyPlaylistLoadSuccess:   "플레이리스트에서 %d곡을 불러왔습니다: %s",
	KeyPlaylistEmpty:         "플레이리스트가 비어 있거나 존재하지 않습니다",
	KeyPlaylistInvalidName:   "사용할 수 없는 플레이리스트 이름입니다",
	KeyNoPlaylist:            "이 서버에는 플레이리스트가 없습니다",
	KeyLanguageChange:        "언어가 한국어로 변경되었습니다",
	KeyVolumeChanged:         "볼륨을 %d%%로 설정했습니다",
	KeyVolumeInvalid:         "볼륨은 0에서 100 사이여야 합니다",
	KeySearchModeYouTube:     "검색 플랫폼을 YouTube로 설정했습니다",
	KeySearchModeSoundCloud:  "검색 플랫폼을 SoundCloud로 설정했습니다",
	KeyEmptyQueue:            "현재 재생 중인 곡이 없습니다",
	KeyMaximumQueue:          "대기열이 가득 찼습니다",
	KeyPlaybackUnavailable:   "지금은 재생을 사용할 수 없습니다",
	KeyInvalidInput:          "지원하지 않는 값입니다",
	KeyStorageFail:           "설정을 저장하지 못했습니다. 잠시 후 다시 시도해 주세요",
	KeyInternalError:         "오류가 발생했습니다",
}
