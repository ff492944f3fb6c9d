package mocks

//go:generate mockery --name Fetcher --srcpkg github.com/aevon-lab/mediadash/internal/providers/spotify --output ./providers --outpkg providermocks --structname SpotifyFetcher --filename spotify_fetcher.go --with-expecter
//go:generate mockery --name Fetcher --srcpkg github.com/aevon-lab/mediadash/internal/providers/steam --output ./providers --outpkg providermocks --structname SteamFetcher --filename steam_fetcher.go --with-expecter
//go:generate mockery --name BackupStore --srcpkg github.com/aevon-lab/mediadash/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name SnapshotStore --srcpkg github.com/aevon-lab/mediadash/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
