package classifiers

import (
	"strings"

	"github.com/mileusna/useragent"
)

type Browser string

const (
	BrowserBot              Browser = "Bot"
	BrowserEdge             Browser = "Edge"
	BrowserChrome           Browser = "Chrome"
	BrowserFirefox          Browser = "Firefox"
	BrowserSafari           Browser = "Safari"
	BrowserInternetExplorer Browser = "Internet Explorer"
	BrowserOther            Browser = "Other"
)

type Device string

const (
	DeviceBot     Device = "bot"
	DeviceMobile  Device = "mobile"
	DeviceTablet  Device = "tablet"
	DeviceDesktop Device = "desktop"
)

// OS is empty when no rule matched.
type OS string

const (
	OSWindows10 OS = "Windows 10"
	OSWindows   OS = "Windows"
	OSMacOS     OS = "macOS"
	OSIOS       OS = "iOS"
	OSAndroid   OS = "Android"
	OSLinux     OS = "Linux"
	OSUnknown   OS = ""
)

var browserRules = []rule[Browser]{
	{match: isBot, result: BrowserBot},
	{match: containsAll("chrome", "edg"), result: BrowserEdge},
	{match: containsAny("chrome"), result: BrowserChrome},
	{match: containsAny("firefox"), result: BrowserFirefox},
	{match: containsAny("safari"), result: BrowserSafari},
	{match: containsAny("msie", "trident"), result: BrowserInternetExplorer},
}

var isMobileKeyword = containsAny(
	"iphone", "android", "mobile", "phone", "ipod",
	"blackberry", "windows phone", "opera mini", "opera mobi",
)

// Android tablets omit the "mobile" token.
func isAndroidTablet(ua string) bool {
	return strings.Contains(ua, "android") && !strings.Contains(ua, "mobile")
}

var deviceRules = []rule[Device]{
	{match: isBot, result: DeviceBot},
	{match: func(ua string) bool { return isMobileKeyword(ua) && isAndroidTablet(ua) }, result: DeviceTablet},
	{match: isMobileKeyword, result: DeviceMobile},
	{match: containsAny("ipad", "tablet", "kindle", "silk", "playbook"), result: DeviceTablet},
}

var osRules = []rule[OS]{
	{match: containsAny("windows nt 10"), result: OSWindows10},
	{match: containsAny("windows"), result: OSWindows},
	{match: containsAny("mac os x"), result: OSMacOS},
	{match: containsAny("iphone", "ipad"), result: OSIOS},
	{match: containsAny("android"), result: OSAndroid},
	{match: containsAny("linux"), result: OSLinux},
}

// Classification groups the three classifications of one user agent.
type Classification struct {
	Browser Browser
	Device  Device
	OS      OS
}

func ClassifyBrowser(ua string) Browser {
	return first(browserRules, strings.ToLower(ua), BrowserOther)
}

func ClassifyDevice(ua string) Device {
	return first(deviceRules, strings.ToLower(ua), DeviceDesktop)
}

func ClassifyOS(ua string) OS {
	return first(osRules, strings.ToLower(ua), OSUnknown)
}

// Classify lowercases once and runs all three rule tables.
func Classify(ua string) Classification {
	lower := strings.ToLower(ua)
	return Classification{
		Browser: first(browserRules, lower, BrowserOther),
		Device:  first(deviceRules, lower, DeviceDesktop),
		OS:      first(osRules, lower, OSUnknown),
	}
}

// Family returns the parsed browser family name, or the raw user agent when
// the parser does not recognise it.
func Family(ua string) string {
	parsed := useragent.Parse(ua)
	if parsed.Name != "" {
		return parsed.Name
	}
	return ua
}
