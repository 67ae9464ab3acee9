package wordlist

import "strings"

// Default returns the built-in word list so practice works before any custom
// list is configured.
func Default() []string {
	return strings.Fields(defaultWords)
}

const defaultWords = `
the be to of and a in that have it for not on with he as you do at this but
his by from they we say her she or an will my one all would there their what
so up out if about who get which go me when make can like time no just him
know take people into year your good some could them see other than then now
look only come its over think also back after use two how our work first well
way even new want because any these give day most us great where through much
before line right too mean old same tell boy follow came show around form
three small set put end does another large must big even such turn here why
ask went men read need land different home move try kind hand picture again
change off play spell air away animal house point page letter mother answer
found study still learn should world high every near add food between own
below country plant last school father keep tree never start city earth eye
light thought head under story saw left few while along might close something
seem next hard open example begin life always those both paper together got
group often run important until children side feet car mile night walk white
sea began grow took river four carry state once book hear stop without second
late miss idea enough eat face watch far really almost let above girl
sometimes mountain cut young talk soon list song being leave family body
music color stand sun question fish area mark dog horse birds problem
complete room knew since ever piece told usually friends easy heard order
red door sure become top ship across today during short better best however
low hours black products happened whole measure remember early waves reached
listen wind rock space covered fast several hold himself toward five step
morning passed vowel true hundred against pattern numeral table north slowly
money map farm pulled draw voice seen cold cried plan notice south sing war
ground fall king town unit figure certain field travel wood fire upon`
