package feed

import "sort"

// defaultFeeds is the built-in category to feed urls table, used when the config doesn't define one
var defaultFeeds = map[string][]string{
	"SPORTS": {
		"https://feeds.bbci.co.uk/sport/rss.xml",
		"https://www.espn.com/espn/rss/news",
		"https://timesofindia.indiatimes.com/rssfeeds/4719148.cms",
		"https://www.hindustantimes.com/feeds/rss/sports/rssfeed.xml",
		"https://indianexpress.com/section/sports/feed/",
	},
	"NEWS": {
		"https://feeds.bbci.co.uk/news/rss.xml",
		"https://timesofindia.indiatimes.com/rssfeedstopstories.cms",
		"https://www.hindustantimes.com/feeds/rss/india-news/rssfeed.xml",
		"https://indianexpress.com/section/india/feed/",
		"https://www.thehindu.com/news/national/feeder/default.rss",
	},
	"TECHNOLOGY": {
		"https://feeds.bbci.co.uk/news/technology/rss.xml",
		"https://timesofindia.indiatimes.com/rssfeeds/66949542.cms",
		"https://indianexpress.com/section/technology/feed/",
		"https://www.theverge.com/rss/index.xml",
	},
	"FINANCE": {
		"https://feeds.bbci.co.uk/news/business/rss.xml",
		"https://timesofindia.indiatimes.com/rssfeeds/1898055.cms",
		"https://www.hindustantimes.com/feeds/rss/business/rssfeed.xml",
		"https://indianexpress.com/section/business/feed/",
		"https://economictimes.indiatimes.com/rssfeedstopstories.cms",
	},
	"ENTERTAINMENT": {
		"https://feeds.bbci.co.uk/news/entertainment_and_arts/rss.xml",
		"https://timesofindia.indiatimes.com/rssfeeds/1081479906.cms",
		"https://www.hindustantimes.com/feeds/rss/entertainment/rssfeed.xml",
		"https://indianexpress.com/section/entertainment/feed/",
	},
	"HEALTH": {
		"https://feeds.bbci.co.uk/news/health/rss.xml",
		"https://timesofindia.indiatimes.com/rssfeeds/3908999.cms",
		"https://indianexpress.com/section/lifestyle/health/feed/",
	},
	"TRAVEL": {
		"https://timesofindia.indiatimes.com/rssfeeds/1977021.cms",
		"https://indianexpress.com/section/lifestyle/destination-of-the-week/feed/",
	},
	"EDUCATION": {
		"https://feeds.bbci.co.uk/news/science_and_environment/rss.xml",
		"https://timesofindia.indiatimes.com/rssfeeds/913168846.cms",
		"https://indianexpress.com/section/education/feed/",
	},
	"WEATHER": {
		"https://feeds.bbci.co.uk/news/science_and_environment/rss.xml",
		"https://timesofindia.indiatimes.com/rssfeeds/2647163.cms",
	},
	"SOCIAL": {
		"https://timesofindia.indiatimes.com/rssfeeds/2886704.cms",
		"https://indianexpress.com/section/lifestyle/feed/",
		"https://www.hindustantimes.com/feeds/rss/lifestyle/rssfeed.xml",
	},
	"SHOPPING":   {"https://timesofindia.indiatimes.com/rssfeeds/1898055.cms"},
	"PROMOTIONS": {"https://timesofindia.indiatimes.com/rssfeeds/1898055.cms"},
}

// DefaultFeeds returns a copy of the built-in category to feed urls table
func DefaultFeeds() map[string][]string {
	res := make(map[string][]string, len(defaultFeeds))
	for cat, urls := range defaultFeeds {
		res[cat] = append([]string(nil), urls...)
	}
	return res
}

// Categories returns sorted category names of a feeds table
func Categories(feeds map[string][]string) []string {
	res := make([]string, 0, len(feeds))
	for cat := range feeds {
		res = append(res, cat)
	}
	sort.Strings(res)
	return res
}
