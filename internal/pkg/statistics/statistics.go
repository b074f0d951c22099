package statistics

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/inkwell-app/inkwell/app/models"
	"github.com/inkwell-app/inkwell/internal/pkg/cache"
	"github.com/inkwell-app/inkwell/internal/pkg/database"
)

const (
	CacheKeyUsers      = "statistics:users:total"
	CacheKeyPosts      = "statistics:posts:total"
	CacheKeyTotalViews = "statistics:views:total"
	CacheExpiration    = 30 * time.Minute
)

// StatisticsData holds the aggregate numbers shown on the home page
type StatisticsData struct {
	TotalUsers int
	TotalPosts int
	TotalViews int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache checks whether the cache refresh interval has elapsed
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cached statistics when they are stale
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// UpdateStatisticsCache recomputes all statistics and stores them in the cache
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var totalUsers int64
	if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		log.Printf("Error counting total users: %v", err)
		return err
	}

	var totalPosts int64
	if err := db.Model(&models.BlogPost{}).Where("published = ?", true).Count(&totalPosts).Error; err != nil {
		log.Printf("Error counting published posts: %v", err)
		return err
	}

	var totalViews int64
	if err := db.Model(&models.BlogPost{}).Select("COALESCE(SUM(view_count), 0)").Scan(&totalViews).Error; err != nil {
		log.Printf("Error summing post views: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyUsers, strconv.FormatInt(totalUsers, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total users: %v", err)
		return err
	}
	if err := cache.Set(CacheKeyPosts, strconv.FormatInt(totalPosts, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total posts: %v", err)
		return err
	}
	if err := cache.Set(CacheKeyTotalViews, strconv.FormatInt(totalViews, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total views: %v", err)
		return err
	}

	return nil
}

// GetStatistics returns the cached aggregates, refreshing lazily on a miss
func GetStatistics() StatisticsData {
	return StatisticsData{
		TotalUsers: getCachedCount(CacheKeyUsers, countUsers),
		TotalPosts: getCachedCount(CacheKeyPosts, countPosts),
		TotalViews: getCachedCount(CacheKeyTotalViews, sumViews),
	}
}

func getCachedCount(key string, fallback func() int64) int {
	val, err := cache.Get(key)
	if err != nil {
		count := fallback()
		if err := cache.Set(key, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching %s: %v", key, err)
		}
		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return int(count)
}

func countUsers() int64 {
	var count int64
	if err := database.GetDB().Model(&models.User{}).Count(&count).Error; err != nil {
		log.Printf("Error counting total users: %v", err)
	}
	return count
}

func countPosts() int64 {
	var count int64
	if err := database.GetDB().Model(&models.BlogPost{}).Where("published = ?", true).Count(&count).Error; err != nil {
		log.Printf("Error counting published posts: %v", err)
	}
	return count
}

func sumViews() int64 {
	var total int64
	if err := database.GetDB().Model(&models.BlogPost{}).Select("COALESCE(SUM(view_count), 0)").Scan(&total).Error; err != nil {
		log.Printf("Error summing post views: %v", err)
	}
	return total
}
