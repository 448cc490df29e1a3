package docs

import (
	"github.com/beevik/etree"
)

const bundlePrefix = "org.podkit."

// infoPlist renders the docset Info.plist
func infoPlist(pod, version string) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective(`DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd"`)

	plist := doc.CreateElement("plist")
	plist.CreateAttr("version", "1.0")
	dict := plist.CreateElement("dict")

	entries := [][2]string{
		{"CFBundleIdentifier", bundlePrefix + pod},
		{"CFBundleName", pod},
		{"CFBundleVersion", version},
		{"DocSetPlatformFamily", pod},
		{"dashIndexFilePath", "index.txt"},
	}
	for _, e := range entries {
		dict.CreateElement("key").SetText(e[0])
		dict.CreateElement("string").SetText(e[1])
	}
	dict.CreateElement("key").SetText("isDashDocset")
	dict.CreateElement("true")

	doc.Indent(2)
	return doc.WriteToBytes()
}

// plistValue returns the string value following key, "" when absent
func plistValue(data []byte, key string) string {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return ""
	}
	dict := doc.FindElement("./plist/dict")
	if dict == nil {
		return ""
	}
	children := dict.ChildElements()
	for i, child := range children {
		if child.Tag == "key" && child.Text() == key && i+1 < len(children) {
			return children[i+1].Text()
		}
	}
	return ""
}
